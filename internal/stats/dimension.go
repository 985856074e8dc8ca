package stats

// Dimension is one of the three axes a catalog breakdown can be grouped by.
// The declaration order is the fixed priority order: when several dimensions
// are active at once, nesting always goes source → media type → public type,
// regardless of the order flags were supplied in.
type Dimension int

const (
	DimensionSource Dimension = iota
	DimensionMediaType
	DimensionPublicType
)

// dimensions lists all groupable dimensions in priority order.
var dimensions = []Dimension{DimensionSource, DimensionMediaType, DimensionPublicType}

func (d Dimension) String() string {
	switch d {
	case DimensionSource:
		return "source"
	case DimensionMediaType:
		return "media_type"
	case DimensionPublicType:
		return "public_type"
	}
	return "unknown"
}

// FieldName returns the JSON field under which a breakdown over this
// dimension is emitted. These names are a compatibility contract.
func (d Dimension) FieldName() string {
	switch d {
	case DimensionSource:
		return "by_source"
	case DimensionMediaType:
		return "by_media_type"
	case DimensionPublicType:
		return "by_public_type"
	}
	return ""
}

// Mode describes the overall response shape resolved from the request flags.
type Mode int

const (
	// ModeTotalsOnly: no flag set, the response carries totals and nothing else.
	ModeTotalsOnly Mode = iota
	// ModeFlat: exactly one flag set, a single flat sibling list.
	ModeFlat
	// ModeNested: two or three flags set, a tree nested in priority order.
	ModeNested
)

// Shape is the resolved response shape: which dimensions are active, in
// priority order, and the resulting mode.
type Shape struct {
	Mode   Mode
	Active []Dimension
}

// Depth returns the number of active dimensions.
func (s Shape) Depth() int {
	return len(s.Active)
}

// Root returns the dimension emitted at the response root. Only meaningful
// for flat and nested shapes.
func (s Shape) Root() Dimension {
	return s.Active[0]
}

// ResolveShape maps the three independent request flags to the active
// dimension list and response mode. Every combination of flags is valid.
func ResolveShape(bySource, byMediaType, byPublicType bool) Shape {
	flags := map[Dimension]bool{
		DimensionSource:     bySource,
		DimensionMediaType:  byMediaType,
		DimensionPublicType: byPublicType,
	}

	var active []Dimension
	for _, d := range dimensions {
		if flags[d] {
			active = append(active, d)
		}
	}

	switch len(active) {
	case 0:
		return Shape{Mode: ModeTotalsOnly}
	case 1:
		return Shape{Mode: ModeFlat, Active: active}
	default:
		return Shape{Mode: ModeNested, Active: active}
	}
}
