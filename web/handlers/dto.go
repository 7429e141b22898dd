package handlers

import (
	"offwork.app/offwork/web/common"
)

type ShiftStartDTO struct {
	// Wall-clock start, "09:00" or "2006-01-02T15:04:05"
	StartTime string `json:"startTime" binding:"required"`
	HalfDay   bool   `json:"halfDay"`
}

type ShiftStatusDTO struct {
	IsWorking  bool    `json:"isWorking"`
	IsOvertime bool    `json:"isOvertime"`
	Progress   float64 `json:"progress"`
	// Wall-clock end, "18:00"; empty while idle
	EndTime string `json:"endTime"`
	// Full local end instant, "2006-01-02T15:04:05"; empty while idle
	EndAt       common.LocalDateTime `json:"endAt"`
	WorkInfo    string               `json:"workInfo"`
	Date        common.DateOnly      `json:"date"`
	DataCleared bool                 `json:"dataCleared,omitempty"`
}

type ShiftPreviewDTO struct {
	EndTime   string `json:"endTime"`
	WorkHours string `json:"workHours"`
}

type PermissionDTO struct {
	Granted bool `json:"granted"`
}
