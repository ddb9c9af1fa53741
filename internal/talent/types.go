// Package talent holds the in-memory computation core of the portal:
// skill normalization, faceting, candidate filtering, derived statistics and
// demand ageing. Everything here is a pure function of its input; repository
// snapshots go in, JSON-ready values come out.
package talent

// Candidate 是接口层与计算层共享的候选人视图，Skills 已归一化为字符串序列。
type Candidate struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Mobile       string   `json:"mobile"`
	Location     string   `json:"location"`
	VisaStatus   string   `json:"visaStatus"`
	Passport     string   `json:"passport"`
	Experience   string   `json:"experience"`
	CurrentRole  string   `json:"currentRole"`
	Skills       []string `json:"skills"`
	Status       string   `json:"status"`
	NoticePeriod string   `json:"noticePeriod"`
	Salary       string   `json:"salary"`
	Education    string   `json:"education"`
	Bio          string   `json:"bio"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// Demand 表示一个招聘需求（job requisition）的对外视图。
// AgeingWeeks 由接口层按当前时间填充。
type Demand struct {
	ID             int      `json:"id"`
	ClientName     string   `json:"clientName"`
	Country        string   `json:"country"`
	Location       string   `json:"location"`
	CreatedDate    string   `json:"createdDate"`
	ExpFrom        int      `json:"expFrom"`
	ExpTo          int      `json:"expTo"`
	Interviewer1   string   `json:"interviewer1"`
	Interviewer2   string   `json:"interviewer2"`
	JobDescription string   `json:"jobDescription"`
	JobPriority    string   `json:"jobPriority"`
	PrimarySkill   []string `json:"primarySkill"`
	SecondarySkill []string `json:"secondarySkill"`
	RecruiterPOC   string   `json:"recruiterPOC"`
	Status         string   `json:"status"`
	AgeingWeeks    int      `json:"ageingWeeks"`
}
