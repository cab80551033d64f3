package resume

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	FullName  string
	Headline  string
	Email     string
	Phone     string
	BlogURL   string
	GithubURL string
	PhotoKey  string
	Public    bool
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Experience struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Company   string
	Title     string
	StartedOn *time.Time
	EndedOn   *time.Time
	Summary   string
	Position  int
	Skills    []SkillTag
}

type SideProject struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	URL       string
	StartedOn *time.Time
	EndedOn   *time.Time
	Summary   string
	Position  int
	Skills    []SkillTag
}

// SkillTag is a resolved canonical skill attached to a section entry.
type SkillTag struct {
	SkillID uuid.UUID
	Name    string
}

type Education struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	School    string
	Degree    string
	Major     string
	StartedOn *time.Time
	EndedOn   *time.Time
	Position  int
}

type Certification struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Issuer   string
	IssuedOn *time.Time
	Position int
}

type LanguageScore struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	TestName string
	Score    string
	TakenOn  *time.Time
	Position int
}

type Activity struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Body      string
	StartedOn *time.Time
	EndedOn   *time.Time
	Position  int
}

// Public is the assembled, share-ready view of one user's résumé.
type Public struct {
	Profile        Profile
	Experiences    []Experience
	SideProjects   []SideProject
	Educations     []Education
	Certifications []Certification
	LanguageScores []LanguageScore
	Activities     []Activity
}
