package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/one-love/onelove/internal/errdef"
	"github.com/one-love/onelove/pkg/model"

	"github.com/go-mail/mail"
	"golang.org/x/crypto/scrypt"
)

func NewService(uiUrl string, repository userRepository, dialer dialer) *Service {
	return &Service{
		uiUrl:      uiUrl,
		repository: repository,
		dialer:     dialer,
	}
}

type userRepository interface {
	create(ctx context.Context, user *model.User) error
	save(ctx context.Context, user *model.User) error
	findAll(ctx context.Context) ([]*model.User, error)
	findByEmail(ctx context.Context, email string) (*model.User, error)
	findByRegisterToken(ctx context.Context, token uuid.UUID) (*model.User, error)
	findById(ctx context.Context, id uint) (*model.User, error)
	delete(ctx context.Context, id uint) error
}

type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type Service struct {
	uiUrl      string
	repository userRepository
	dialer     dialer
}

// RegisterUserInput carries the registration fields, only Email is required.
type RegisterUserInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Register creates a new inactive user holding a fresh single-use registration
// token and mails the confirmation link. The user can't sign in until the
// token is confirmed.
func (s Service) Register(ctx context.Context, input RegisterUserInput) (*model.User, error) {
	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	user := &model.User{
		Email:         input.Email,
		Username:      input.Username,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Password:      hashedPassword,
		Active:        false,
		RegisterToken: uuid.New(),
	}

	err = s.repository.create(ctx, user)
	if err != nil {
		return nil, err
	}

	err = s.sendConfirmationEmail(user)
	if err != nil {
		return nil, fmt.Errorf("failed to send confirmation email: %s", err)
	}

	return user, nil
}

func (s Service) sendConfirmationEmail(user *model.User) error {
	m := mail.NewMessage()
	m.SetHeader("From", "One Love <no-reply@one-love.org>")
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "Registration")
	link := fmt.Sprintf("%s/users/confirm/%s", s.uiUrl, user.RegisterToken)
	body := fmt.Sprintf("Hello, please click the below link to confirm your registration.<br/>%s", link)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

// Confirm activates the user holding token and burns the token. Confirming an
// unknown or already consumed token fails with not found, there is no way back
// to the pending state.
func (s Service) Confirm(ctx context.Context, token uuid.UUID) (*model.User, error) {
	if token == uuid.Nil {
		return nil, errdef.NewNotFound("user does not exist")
	}

	user, err := s.repository.findByRegisterToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user.Active = true
	user.RegisterToken = uuid.Nil
	err = s.repository.save(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 32)
	_, err := rand.Read(salt)
	if err != nil {
		return "", err
	}

	// using recommended cost parameters from - https://godoc.org/golang.org/x/crypto/scrypt
	hash, err := scrypt.Key([]byte(password), salt, 32768, 8, 1, 32)
	if err != nil {
		return "", err
	}

	hashedPassword := fmt.Sprintf("%s.%s", hex.EncodeToString(hash), hex.EncodeToString(salt))

	return hashedPassword, nil
}

func comparePasswords(storedPassword string, suppliedPassword string) (bool, error) {
	passwordAndSalt := strings.Split(storedPassword, ".")
	if len(passwordAndSalt) != 2 {
		return false, fmt.Errorf("wrong password/salt format: %s", storedPassword)
	}

	salt, err := hex.DecodeString(passwordAndSalt[1])
	if err != nil {
		return false, fmt.Errorf("unable to verify user password")
	}

	hash, err := scrypt.Key([]byte(suppliedPassword), salt, 32768, 8, 1, 32)
	if err != nil {
		return false, err
	}

	return hex.EncodeToString(hash) == passwordAndSalt[0], nil
}

func (s Service) SignIn(ctx context.Context, email string, password string) (*model.User, error) {
	unauthorizedError := "invalid email and password combination"

	user, err := s.repository.findByEmail(ctx, email)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized("%s", unauthorizedError)
		}
		return nil, err
	}

	match, err := comparePasswords(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	if !match {
		return nil, errdef.NewUnauthorized("%s", unauthorizedError)
	}

	if !user.Active {
		return nil, errdef.NewForbidden("account not confirmed")
	}

	return user, nil
}

func (s Service) FindAll(ctx context.Context) ([]*model.User, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.User, error) {
	return s.repository.findById(ctx, id)
}

// UpdateUserInput carries the updatable fields. Empty fields keep the current
// value, clearing a field to the empty string is not possible.
type UpdateUserInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
}

func (s Service) Update(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error) {
	user, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}

	err = s.repository.save(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s Service) Delete(ctx context.Context, id uint) error {
	return s.repository.delete(ctx, id)
}
