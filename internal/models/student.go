package models

type Student struct {
	StudentID string `json:"student_id"`
	Absen     string `json:"absen"`
	NIS       string `json:"nis"`
	Name      string `json:"name" validate:"required"`
	Class     string `json:"class" validate:"required"`
}

type ExamConfig struct {
	ExamBlocked    bool `json:"exam_blocked"`
	ReviewDuration int  `json:"review_duration"`
}
