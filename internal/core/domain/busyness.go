package domain

type BusynessLevel string

const (
	BusynessLow      BusynessLevel = "low"
	BusynessMedium   BusynessLevel = "medium"
	BusynessHigh     BusynessLevel = "high"
	BusynessCritical BusynessLevel = "critical"
)

var busynessColors = map[BusynessLevel]string{
	BusynessLow:      "green",
	BusynessMedium:   "yellow",
	BusynessHigh:     "orange",
	BusynessCritical: "red",
}

type Busyness struct {
	Level BusynessLevel `json:"level"`
	Color string        `json:"color"`
}

func NewBusyness(level BusynessLevel) Busyness {
	return Busyness{Level: level, Color: busynessColors[level]}
}
