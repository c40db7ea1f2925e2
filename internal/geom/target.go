package geom

// Categorical target field types. Each wraps the scalar the wire schema
// carries for it.
type (
	TargetType  string
	Orientation string
	Shape       string
	Color       string
)

const (
	TargetStandard TargetType = "standard"
	TargetOffAxis  TargetType = "off_axis"
	TargetEmergent TargetType = "emergent"
	TargetQRC      TargetType = "qrc"
)

const (
	North     Orientation = "n"
	Northeast Orientation = "ne"
	East      Orientation = "e"
	Southeast Orientation = "se"
	South     Orientation = "s"
	Southwest Orientation = "sw"
	West      Orientation = "w"
	Northwest Orientation = "nw"
)

const (
	ShapeCircle        Shape = "circle"
	ShapeSemicircle    Shape = "semicircle"
	ShapeQuarterCircle Shape = "quarter_circle"
	ShapeTriangle      Shape = "triangle"
	ShapeSquare        Shape = "square"
	ShapeRectangle     Shape = "rectangle"
	ShapeTrapezoid     Shape = "trapezoid"
	ShapePentagon      Shape = "pentagon"
	ShapeHexagon       Shape = "hexagon"
	ShapeHeptagon      Shape = "heptagon"
	ShapeOctagon       Shape = "octagon"
	ShapeStar          Shape = "star"
	ShapeCross         Shape = "cross"
)

const (
	ColorWhite  Color = "white"
	ColorBlack  Color = "black"
	ColorGray   Color = "gray"
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorBrown  Color = "brown"
	ColorOrange Color = "orange"
)

// Target is a submission for the judges. ID is zero until the server assigns
// one.
type Target struct {
	ID                int64       `json:"id"`
	Type              TargetType  `json:"type"`
	Latitude          float64     `json:"latitude"`
	Longitude         float64     `json:"longitude"`
	Orientation       Orientation `json:"orientation"`
	Shape             Shape       `json:"shape"`
	BackgroundColor   Color       `json:"background_color"`
	Alphanumeric      string      `json:"alphanumeric"`
	AlphanumericColor Color       `json:"alphanumeric_color"`
	Description       string      `json:"description"`
	Autonomous        bool        `json:"autonomous"`
}
