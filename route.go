package c2cgpx

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Route holds the route-specific fields of a route Document.
type Route struct {
	GlobalRating         string `json:"global_rating"`
	RockFreeRating       string `json:"rock_free_rating"`
	RockRequiredRating   string `json:"rock_required_rating"`
	AidRating            string `json:"aid_rating"`
	EngagementRating     string `json:"engagement_rating"`
	RiskRating           string `json:"risk_rating"`
	EquipmentRating      string `json:"equipment_rating"`
	ExpositionRockRating string `json:"exposition_rock_rating"`

	ElevationMin           *int     `json:"elevation_min"`
	ElevationMax           *int     `json:"elevation_max"`
	HeightDiffUp           *int     `json:"height_diff_up"`
	HeightDiffDown         *int     `json:"height_diff_down"`
	HeightDiffDifficulties *int     `json:"height_diff_difficulties"`
	Orientations           []string `json:"orientations"`
}

// DecodeRoute decodes the route fields of doc's raw record.
func DecodeRoute(doc *Document) (*Route, error) {
	var r Route
	if len(doc.Raw) == 0 {
		return &r, nil
	}
	if err := json.Unmarshal(doc.Raw, &r); err != nil {
		return nil, Errorf(EINVALID, "document %d (%s): invalid route fields: %v", doc.ID, doc.Type, err)
	}
	return &r, nil
}

// Grading joins the ratings with single spaces. The required rock rating
// attaches to the free rating as "free>required".
func (r *Route) Grading() string {
	var b strings.Builder
	b.WriteString(r.GlobalRating)
	if r.RockFreeRating != "" {
		b.WriteString(" " + r.RockFreeRating)
	}
	if r.RockRequiredRating != "" {
		b.WriteString(">" + r.RockRequiredRating)
	}
	for _, rating := range []string{
		r.AidRating,
		r.EngagementRating,
		r.RiskRating,
		r.EquipmentRating,
		r.ExpositionRockRating,
	} {
		if rating != "" {
			b.WriteString(" " + rating)
		}
	}
	return strings.TrimSpace(b.String())
}

// Altitude returns "min m - max m", leaving out absent bounds.
func (r *Route) Altitude() string {
	var parts []string
	if v := value(r.ElevationMin); v != 0 {
		parts = append(parts, fmt.Sprintf("%d m", v))
	}
	if v := value(r.ElevationMax); v != 0 {
		parts = append(parts, fmt.Sprintf("%d m", v))
	}
	return strings.Join(parts, " - ")
}

// Orientation returns the comma-joined orientations.
func (r *Route) Orientation() string {
	return strings.Join(r.Orientations, ",")
}

// HeightDiff returns "+up m / -down m (difficulties m)". With only the
// difficulties height it returns "difficulties m".
func (r *Route) HeightDiff() string {
	var parts []string
	if v := value(r.HeightDiffUp); v != 0 {
		parts = append(parts, fmt.Sprintf("+%d m", v))
	}
	if v := value(r.HeightDiffDown); v != 0 {
		parts = append(parts, fmt.Sprintf("-%d m", v))
	}
	s := strings.Join(parts, " / ")

	d := value(r.HeightDiffDifficulties)
	switch {
	case d == 0:
		return s
	case s == "":
		return fmt.Sprintf("%d m", d)
	default:
		return fmt.Sprintf("%s (%d m)", s, d)
	}
}

func value(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
