// file: internals/helpers/dbtime/dbtime.go
package dbtime

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Nama locals mengikuti yg di-set di middleware AuthJWT
const (
	LocCompanyTimezone = "company_timezone" // string, misal "Asia/Jakarta"
	LocCompanyLoc      = "company_loc"      // *time.Location
)

// GetCompanyLocation ambil *time.Location berdasarkan token:
// 1) c.Locals("company_loc") yang diisi middleware
// 2) kalau belum ada: baca "company_timezone" lalu LoadLocation
// 3) fallback: Asia/Jakarta, terakhir UTC
func GetCompanyLocation(c *fiber.Ctx) *time.Location {
	if c == nil {
		return time.UTC
	}

	if v := c.Locals(LocCompanyLoc); v != nil {
		if loc, ok := v.(*time.Location); ok && loc != nil {
			return loc
		}
	}

	if v := c.Locals(LocCompanyTimezone); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			if loc, err := time.LoadLocation(strings.TrimSpace(s)); err == nil {
				c.Locals(LocCompanyLoc, loc)
				return loc
			}
		}
	}

	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		c.Locals(LocCompanyLoc, loc)
		return loc
	}

	return time.UTC
}

// ToCompanyTime mengonversi waktu (biasanya dari DB = UTC) ke timezone tenant.
// Kalau t.IsZero() → dikembalikan apa adanya.
func ToCompanyTime(c *fiber.Ctx, t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(GetCompanyLocation(c))
}
