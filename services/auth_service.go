package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"civicreport-be/catalog"
	"civicreport-be/models"
	"civicreport-be/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidUserType     = errors.New("invalid user type")
	ErrUnknownMunicipality = errors.New("unknown municipality")
	ErrUnknownWard         = errors.New("unknown ward for this municipality")
	ErrNotMunicipalStaff   = errors.New("email is not registered as municipal staff")
	ErrInvalidSession      = errors.New("invalid session")
)

type SignUpInput struct {
	Name           string
	Email          string
	Password       string
	Type           models.UserType
	MunicipalityID string
	Ward           string
}

// AuthService registers accounts and turns them into sessions.
type AuthService struct {
	users   store.UserStore
	catalog *catalog.Catalog
	logger  *zap.Logger
	now     func() time.Time
}

func NewAuthService(users store.UserStore, cat *catalog.Catalog, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, catalog: cat, logger: logger, now: time.Now}
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (models.User, error) {
	if in.Type == "" {
		in.Type = models.UserCitizen
	}
	if !in.Type.Valid() {
		return models.User{}, ErrInvalidUserType
	}
	m, ok := s.catalog.Municipality(in.MunicipalityID)
	if !ok {
		return models.User{}, ErrUnknownMunicipality
	}

	now := s.now().UTC()
	user := models.User{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		Password:       in.Password,
		Type:           in.Type,
		MunicipalityID: m.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	switch in.Type {
	case models.UserWardCouncillor:
		w, ok := m.Ward(in.Ward)
		if !ok {
			return models.User{}, ErrUnknownWard
		}
		user.Ward = w.ID
		if emailDomain(user.Email) != emailDomain(m.Contact.Email) {
			return models.User{}, ErrNotMunicipalStaff
		}
	case models.UserCallCenter:
		if emailDomain(user.Email) != emailDomain(m.Contact.Email) {
			return models.User{}, ErrNotMunicipalStaff
		}
	case models.UserMunicipalAdmin:
		if !m.IsAdmin(user.Email) {
			return models.User{}, ErrNotMunicipalStaff
		}
	case models.UserFieldWorker, models.UserDepartmentHead:
		staff, ok := s.staffByEmail(user.Email)
		if !ok || (in.Type == models.UserDepartmentHead) != (staff.Role == models.RoleManager) {
			return models.User{}, ErrNotMunicipalStaff
		}
		user.StaffID = staff.ID
		user.DepartmentID = staff.DepartmentID
	case models.UserCitizen:
		if in.Ward != "" {
			if w, ok := m.Ward(in.Ward); ok {
				user.Ward = w.ID
			}
		}
	}

	if err := user.HashPassword(); err != nil {
		return models.User{}, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}
	s.logger.Info("user registered", zap.String("id", user.ID), zap.String("type", string(user.Type)))
	return user, nil
}

func (s *AuthService) staffByEmail(email string) (models.Staff, bool) {
	for _, st := range s.catalog.Staff {
		if strings.EqualFold(st.Email, email) {
			return st, true
		}
	}
	return models.Staff{}, false
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if !user.ComparePassword(password) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// SessionFor builds the session carried in the auth token.
func (s *AuthService) SessionFor(user models.User) (models.Session, error) {
	m, ok := s.catalog.Municipality(user.MunicipalityID)
	if !ok {
		return models.Session{}, ErrUnknownMunicipality
	}
	return models.Session{
		Email: user.Email,
		Name:  user.Name,
		Type:  user.Type,
		Municipality: models.SessionMunicipality{
			ID:       m.ID,
			Name:     m.Name,
			Province: m.Province,
		},
		Ward:         user.Ward,
		DepartmentID: user.DepartmentID,
		StaffID:      user.StaffID,
	}, nil
}

// ValidateSession rejects sessions written by older releases or tampered
// with: unknown role types, municipalities, wards or staff ids.
func (s *AuthService) ValidateSession(sess models.Session) error {
	if sess.Email == "" || !sess.Type.Valid() {
		return ErrInvalidSession
	}
	m, ok := s.catalog.Municipality(sess.Municipality.ID)
	if !ok {
		return ErrInvalidSession
	}
	switch sess.Type {
	case models.UserWardCouncillor:
		if _, ok := m.Ward(sess.Ward); !ok {
			return ErrInvalidSession
		}
	case models.UserFieldWorker, models.UserDepartmentHead:
		if _, ok := s.catalog.StaffMember(sess.StaffID); !ok {
			return ErrInvalidSession
		}
	case models.UserMunicipalAdmin:
		if !m.IsAdmin(sess.Email) {
			return ErrInvalidSession
		}
	}
	return nil
}
