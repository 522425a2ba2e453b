package user

import (
	"errors"
	"sync"
	"time"

	"github.com/AnnonDomini/Exam-Bombers-V1/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")

	NowFunc = time.Now // mockable
)

type (
	// Repository is the user storage contract. CreateUser does not check username uniqueness.
	Repository interface {
		CreateUser(user User) (User, error)
		GetUserByID(id int) (User, error)
		GetUserByUsername(username string) (User, error)
		UpdateUserRole(id int, role string) (User, error)
		QueryAllUsers() ([]User, error)
	}

	Service interface {
		Create(nu NewUser) (User, error)
		Authenticate(uname, pwd string) (User, error)
		QueryAll() ([]User, error)
		GetByID(id int) (User, error)
		GetByUsername(uname string) (User, error)
		UpdateRole(id int, role string) (User, error)
	}

	service struct {
		repo       Repository
		allowAdmin bool

		signupMu sync.Mutex // serializes the uniqueness check and the insert
	}
)

func NewService(repo Repository, conf *core.Config) Service {
	return &service{repo: repo, allowAdmin: conf.Registration.AllowAdmin}
}

func (svc *service) checkUniqueness(uname string) error {
	_, err := svc.repo.GetUserByUsername(uname)
	switch err {
	case nil:
		return core.NewFieldValidationError("username", ErrUsernameExists)
	case ErrNotFound:
		return nil
	default:
		return err
	}
}

func (svc *service) Create(nu NewUser) (User, error) {
	if nu.Role == "" {
		nu.Role = DefaultRole
	}
	if nu.Role == RoleAdmin && !svc.allowAdmin {
		return User{}, core.NewFieldValidationError("role", ErrInvalidRole)
	}

	usr := User{
		Username:  nu.Username,
		Role:      nu.Role,
		CreatedAt: NowFunc().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}

	svc.signupMu.Lock()
	defer svc.signupMu.Unlock()
	if err := svc.checkUniqueness(usr.Username); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(usr)
}

// Authenticate returns ErrInvalidCredentials for both unknown usernames and wrong passwords.
func (svc *service) Authenticate(uname, pwd string) (User, error) {
	usr, err := svc.repo.GetUserByUsername(uname)
	if err != nil {
		if err == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

func (svc *service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *service) GetByID(id int) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *service) GetByUsername(uname string) (User, error) {
	return svc.repo.GetUserByUsername(uname)
}

func (svc *service) UpdateRole(id int, role string) (User, error) {
	return svc.repo.UpdateUserRole(id, role)
}
