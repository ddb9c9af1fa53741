package database

import (
	"time"

	"gorm.io/datatypes"
)

// Candidate 表示候选人记录。Skills 以提交时的原始 JSON 形态保存
// （数组、JSON 字符串或逗号串），读取时统一归一化为序列。
// 时间戳沿用 ISO 字符串形态。
type Candidate struct {
	ID           int            `gorm:"primaryKey"`
	Name         string         `gorm:"size:255"`
	Email        string         `gorm:"uniqueIndex;size:255"`
	Mobile       string         `gorm:"size:32"`
	Location     string         `gorm:"size:255"`
	VisaStatus   string         `gorm:"size:64"`
	Passport     string         `gorm:"size:64"`
	Experience   string         `gorm:"size:64"`
	CurrentRole  string         `gorm:"size:255"`
	Skills       datatypes.JSON `gorm:"type:jsonb"`
	Status       string         `gorm:"size:32"`
	NoticePeriod string         `gorm:"size:64"`
	Salary       string         `gorm:"size:64"`
	Education    string         `gorm:"size:255"`
	Bio          string
	CreatedAt    string `gorm:"size:64"`
	UpdatedAt    string `gorm:"size:64"`
}

// Demand 表示招聘需求记录。CreatedDate 为 "YYYY-MM-DD" 字符串。
type Demand struct {
	ID             int            `gorm:"primaryKey"`
	ClientName     string         `gorm:"size:255"`
	Country        string         `gorm:"size:128"`
	Location       string         `gorm:"size:255"`
	CreatedDate    string         `gorm:"size:32"`
	ExpFrom        int
	ExpTo          int
	Interviewer1   string `gorm:"size:255"`
	Interviewer2   string `gorm:"size:255"`
	JobDescription string
	JobPriority    string         `gorm:"size:16"`
	PrimarySkill   datatypes.JSON `gorm:"type:jsonb"`
	SecondarySkill datatypes.JSON `gorm:"type:jsonb"`
	RecruiterPOC   string         `gorm:"size:255"`
	Status         string         `gorm:"size:16"`
}

// User 表示后台账号。读取接口绝不返回 PasswordHash。
type User struct {
	Username     string `gorm:"primaryKey;size:64"`
	PasswordHash string `gorm:"size:255"`
	Role         string `gorm:"size:16"`
	CreatedAt    time.Time
}
