package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserType drives which dashboards a session may open
type UserType string

const (
	UserCitizen        UserType = "citizen"
	UserCallCenter     UserType = "call-center"
	UserFieldWorker    UserType = "field-worker"
	UserWardCouncillor UserType = "ward-councillor"
	UserDepartmentHead UserType = "department-head"
	UserMunicipalAdmin UserType = "municipal-admin"
)

var userTypes = map[UserType]bool{
	UserCitizen: true, UserCallCenter: true, UserFieldWorker: true,
	UserWardCouncillor: true, UserDepartmentHead: true, UserMunicipalAdmin: true,
}

func (t UserType) Valid() bool {
	return userTypes[t]
}

// IsStaff is true for every municipal role.
func (t UserType) IsStaff() bool {
	return t.Valid() && t != UserCitizen
}

type User struct {
	ID             string    `bson:"_id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Password       string    `bson:"password,omitempty" json:"-"`
	Type           UserType  `bson:"type" json:"type"`
	MunicipalityID string    `bson:"municipality" json:"municipality"`
	Ward           string    `bson:"ward,omitempty" json:"ward,omitempty"`
	DepartmentID   string    `bson:"department,omitempty" json:"departmentId,omitempty"`
	StaffID        string    `bson:"staffId,omitempty" json:"staffId,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// SessionMunicipality is the municipality summary carried in a session
type SessionMunicipality struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Province string `json:"province"`
}

// Session is the signed-in user as seen by handlers and dashboards
type Session struct {
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	Type         UserType            `json:"type"`
	Municipality SessionMunicipality `json:"municipality"`
	Ward         string              `json:"ward,omitempty"`
	DepartmentID string              `json:"departmentId,omitempty"`
	StaffID      string              `json:"staffId,omitempty"`
}
