package facilities

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/creche/internal/models"
)

// AmenityTypes are the OSM amenity values treated as childcare.
var AmenityTypes = []string{"kindergarten", "childcare"}

// NameKeywords match childcare facilities by name, case-insensitively, when
// they lack a proper amenity tag.
var NameKeywords = []string{
	"Crèche",
	"Creche",
	"Maison Bleue",
	"Babilou",
	"Chaperon",
	"Montessori",
	"Micro",
	"Petite Enfance",
}

// queryTimeoutSeconds is the server-side budget announced in the query header.
const queryTimeoutSeconds = 90

// BuildQuery renders the Overpass QL selecting childcare nodes around origin.
// "out center" makes extended geometries report a representative point.
func BuildQuery(origin models.Coordinates, radiusMeters float64) string {
	around := fmt.Sprintf("(around:%s,%s,%s)",
		strconv.FormatFloat(math.Round(radiusMeters), 'f', 0, 64),
		strconv.FormatFloat(origin.Latitude, 'f', -1, 64),
		strconv.FormatFloat(origin.Longitude, 'f', -1, 64),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];\n(\n", queryTimeoutSeconds)
	fmt.Fprintf(&b, "  node[\"amenity\"~\"%s\"]%s;\n", strings.Join(AmenityTypes, "|"), around)
	fmt.Fprintf(&b, "  node[\"name\"~\"%s\",i]%s;\n", strings.Join(NameKeywords, "|"), around)
	b.WriteString(");\nout center;\n")

	return b.String()
}
