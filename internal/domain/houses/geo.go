package houses

import (
	"strconv"
	"strings"

	"github.com/mmcloughlin/geohash"
)

const geohashPrecision = 9

// GeohashFromCoords encodes "lat,lon" coordinates. Anything that does not
// parse as a valid pair yields an empty hash.
func GeohashFromCoords(coords string) string {
	parts := strings.Split(coords, ",")
	if len(parts) != 2 {
		return ""
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return ""
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lon < -180 || lon > 180 {
		return ""
	}
	return geohash.EncodeWithPrecision(lat, lon, geohashPrecision)
}
