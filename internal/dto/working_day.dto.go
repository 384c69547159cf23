package dto

type BreakDTO struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type WorkingDayDTO struct {
	Weekday   int        `json:"weekday"`
	IsWorking bool       `json:"is_working"`
	Start     string     `json:"start"`
	End       string     `json:"end"`
	Breaks    []BreakDTO `json:"breaks"`
}
