package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hirePortal/internal/talent"
)

// ErrNotFound 表示按键查找无结果。接口层据此返回 404。
var ErrNotFound = errors.New("record not found")

// CandidateStore 抽象候选人存取，测试可注入内存实现。
// 所有读取返回归一化后的候选人视图。
type CandidateStore interface {
	ListAll(ctx context.Context) ([]talent.Candidate, error)
	GetByID(ctx context.Context, id int) (talent.Candidate, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, row Candidate) (talent.Candidate, error)
	Update(ctx context.Context, id int, fields map[string]any) (talent.Candidate, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// DemandStore 抽象需求存取。
type DemandStore interface {
	ListAll(ctx context.Context) ([]talent.Demand, error)
	GetByID(ctx context.Context, id int) (talent.Demand, error)
	Create(ctx context.Context, row Demand) (talent.Demand, error)
	Update(ctx context.Context, id int, fields map[string]any) (talent.Demand, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// UserView 是对外暴露的账号信息，永不携带密码哈希。
type UserView struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserStore 抽象账号存取。GetByUsername 仅供登录校验使用。
type UserStore interface {
	List(ctx context.Context) ([]UserView, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user User) (UserView, error)
	UpdateRole(ctx context.Context, username, role string) (UserView, error)
	Delete(ctx context.Context, username string) (bool, error)
}

// NewCandidateStore 返回基于 GORM 的候选人存取实现。
func NewCandidateStore(db *gorm.DB) CandidateStore { return &gormCandidateStore{db: db} }

// NewDemandStore 返回基于 GORM 的需求存取实现。
func NewDemandStore(db *gorm.DB) DemandStore { return &gormDemandStore{db: db} }

// NewUserStore 返回基于 GORM 的账号存取实现。
func NewUserStore(db *gorm.DB) UserStore { return &gormUserStore{db: db} }

type gormCandidateStore struct {
	db *gorm.DB
}

// 允许通过合并更新修改的字段（JSON 键 -> 列名）。
// id 与 createdAt 不可变。
var candidateColumns = map[string]string{
	"name":         "name",
	"email":        "email",
	"mobile":       "mobile",
	"location":     "location",
	"visaStatus":   "visa_status",
	"passport":     "passport",
	"experience":   "experience",
	"currentRole":  "current_role",
	"skills":       "skills",
	"status":       "status",
	"noticePeriod": "notice_period",
	"salary":       "salary",
	"education":    "education",
	"bio":          "bio",
}

func (s *gormCandidateStore) ListAll(ctx context.Context) ([]talent.Candidate, error) {
	var rows []Candidate
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	candidates := make([]talent.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, candidateView(row))
	}
	return candidates, nil
}

func (s *gormCandidateStore) GetByID(ctx context.Context, id int) (talent.Candidate, error) {
	var row Candidate
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return talent.Candidate{}, ErrNotFound
		}
		return talent.Candidate{}, err
	}
	return candidateView(row), nil
}

func (s *gormCandidateStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Candidate{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create assigns id = max(id)+1 and the creation timestamps, all inside one
// transaction so the read-then-insert cannot interleave with another create
// on the same connection pool.
func (s *gormCandidateStore) Create(ctx context.Context, row Candidate) (talent.Candidate, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	row.CreatedAt = now
	row.UpdatedAt = now

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var nextID int
		if err := tx.Model(&Candidate{}).Select("COALESCE(MAX(id), 0) + 1").Scan(&nextID).Error; err != nil {
			return err
		}
		row.ID = nextID
		return tx.Create(&row).Error
	})
	if err != nil {
		return talent.Candidate{}, err
	}
	return candidateView(row), nil
}

func (s *gormCandidateStore) Update(ctx context.Context, id int, fields map[string]any) (talent.Candidate, error) {
	values, err := mergeValues(fields, candidateColumns, "skills")
	if err != nil {
		return talent.Candidate{}, err
	}
	values["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Candidate
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Model(&Candidate{}).Where("id = ?", id).Updates(values).Error
	})
	if err != nil {
		return talent.Candidate{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *gormCandidateStore) Delete(ctx context.Context, id int) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&Candidate{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type gormDemandStore struct {
	db *gorm.DB
}

var demandColumns = map[string]string{
	"clientName":     "client_name",
	"country":        "country",
	"location":       "location",
	"expFrom":        "exp_from",
	"expTo":          "exp_to",
	"interviewer1":   "interviewer1",
	"interviewer2":   "interviewer2",
	"jobDescription": "job_description",
	"jobPriority":    "job_priority",
	"primarySkill":   "primary_skill",
	"secondarySkill": "secondary_skill",
	"recruiterPOC":   "recruiter_poc",
	"status":         "status",
}

func (s *gormDemandStore) ListAll(ctx context.Context) ([]talent.Demand, error) {
	var rows []Demand
	if err := s.db.WithContext(ctx).Order("created_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	demands := make([]talent.Demand, 0, len(rows))
	for _, row := range rows {
		demands = append(demands, demandView(row))
	}
	return demands, nil
}

func (s *gormDemandStore) GetByID(ctx context.Context, id int) (talent.Demand, error) {
	var row Demand
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return talent.Demand{}, ErrNotFound
		}
		return talent.Demand{}, err
	}
	return demandView(row), nil
}

func (s *gormDemandStore) Create(ctx context.Context, row Demand) (talent.Demand, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var nextID int
		if err := tx.Model(&Demand{}).Select("COALESCE(MAX(id), 0) + 1").Scan(&nextID).Error; err != nil {
			return err
		}
		row.ID = nextID
		return tx.Create(&row).Error
	})
	if err != nil {
		return talent.Demand{}, err
	}
	return demandView(row), nil
}

func (s *gormDemandStore) Update(ctx context.Context, id int, fields map[string]any) (talent.Demand, error) {
	values, err := mergeValues(fields, demandColumns, "primarySkill", "secondarySkill")
	if err != nil {
		return talent.Demand{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Demand
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if len(values) == 0 {
			return nil
		}
		return tx.Model(&Demand{}).Where("id = ?", id).Updates(values).Error
	})
	if err != nil {
		return talent.Demand{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *gormDemandStore) Delete(ctx context.Context, id int) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&Demand{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type gormUserStore struct {
	db *gorm.DB
}

func (s *gormUserStore) List(ctx context.Context) ([]UserView, error) {
	var rows []User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]UserView, 0, len(rows))
	for _, row := range rows {
		users = append(users, userView(row))
	}
	return users, nil
}

func (s *gormUserStore) GetByUsername(ctx context.Context, username string) (User, error) {
	var row User
	if err := s.db.WithContext(ctx).First(&row, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return row, nil
}

func (s *gormUserStore) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *gormUserStore) Create(ctx context.Context, user User) (UserView, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return UserView{}, err
	}
	return userView(user), nil
}

func (s *gormUserStore) UpdateRole(ctx context.Context, username, role string) (UserView, error) {
	row, err := s.GetByUsername(ctx, username)
	if err != nil {
		return UserView{}, err
	}
	if err := s.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Update("role", role).Error; err != nil {
		return UserView{}, err
	}
	row.Role = role
	return userView(row), nil
}

func (s *gormUserStore) Delete(ctx context.Context, username string) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&User{}, "username = ?", username)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// mergeValues 把 JSON 字段映射为列更新；jsonKeys 指定需要整体重编码为
// JSONB 的字段。不在允许列表中的键（含 id、createdAt）被静默忽略。
func mergeValues(fields map[string]any, columns map[string]string, jsonKeys ...string) (map[string]any, error) {
	jsonSet := make(map[string]bool, len(jsonKeys))
	for _, key := range jsonKeys {
		jsonSet[key] = true
	}

	values := make(map[string]any, len(fields))
	for key, value := range fields {
		column, ok := columns[key]
		if !ok {
			continue
		}
		if jsonSet[key] {
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			values[column] = datatypes.JSON(encoded)
			continue
		}
		values[column] = value
	}
	return values, nil
}

func candidateView(row Candidate) talent.Candidate {
	return talent.Candidate{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		Mobile:       row.Mobile,
		Location:     row.Location,
		VisaStatus:   row.VisaStatus,
		Passport:     row.Passport,
		Experience:   row.Experience,
		CurrentRole:  row.CurrentRole,
		Skills:       talent.DecodeSkills(row.Skills),
		Status:       row.Status,
		NoticePeriod: row.NoticePeriod,
		Salary:       row.Salary,
		Education:    row.Education,
		Bio:          row.Bio,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func demandView(row Demand) talent.Demand {
	return talent.Demand{
		ID:             row.ID,
		ClientName:     row.ClientName,
		Country:        row.Country,
		Location:       row.Location,
		CreatedDate:    row.CreatedDate,
		ExpFrom:        row.ExpFrom,
		ExpTo:          row.ExpTo,
		Interviewer1:   row.Interviewer1,
		Interviewer2:   row.Interviewer2,
		JobDescription: row.JobDescription,
		JobPriority:    row.JobPriority,
		PrimarySkill:   talent.DecodeSkills(row.PrimarySkill),
		SecondarySkill: talent.DecodeSkills(row.SecondarySkill),
		RecruiterPOC:   row.RecruiterPOC,
		Status:         row.Status,
	}
}

func userView(row User) UserView {
	return UserView{
		Username:  row.Username,
		Role:      row.Role,
		CreatedAt: row.CreatedAt,
	}
}
