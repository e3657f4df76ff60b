package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
	"github.com/revit/marketplace/internal/infrastructure/db/memory"
)

func proInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:      " Pete@Example.com ",
		Password:   "hunter22",
		Name:       "Pete",
		Phone:      "555-0101",
		UserType:   domain.RoleProfessional,
		Profession: "Plumber",
		Experience: "10 years",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), "secret", time.Hour)

	user, err := svc.Register(context.Background(), proInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if user.Email != "pete@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.Profession != "plumber" {
		t.Fatalf("profession should be normalized, got %q", user.Profession)
	}
	if user.PasswordHash == "hunter22" {
		t.Fatalf("password must be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), "secret", time.Hour)

	if _, err := svc.Register(context.Background(), proInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), proInput())
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(memory.NewStore().Users(), "secret", time.Hour)

	cases := map[string]func(in *ports.RegisterInput){
		"missing email":          func(in *ports.RegisterInput) { in.Email = "" },
		"missing name":           func(in *ports.RegisterInput) { in.Name = " " },
		"short password":         func(in *ports.RegisterInput) { in.Password = "short" },
		"unknown user type":      func(in *ports.RegisterInput) { in.UserType = "admin" },
		"professional w/o trade": func(in *ports.RegisterInput) { in.Profession = "" },
		"unknown profession":     func(in *ports.RegisterInput) { in.Profession = "wizard" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := proInput()
			mutate(&in)
			if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_ClientDropsProfession(t *testing.T) {
	svc := NewAuthService(memory.NewStore().Users(), "secret", time.Hour)
	in := proInput()
	in.UserType = domain.RoleClient

	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Profession != "" {
		t.Fatalf("clients carry no profession, got %q", user.Profession)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(memory.NewStore().Users(), "secret", time.Hour)
	registered, err := svc.Register(context.Background(), proInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "PETE@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user %+v", user)
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tkn.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["user_id"] != registered.ID || claims["role"] != domain.RoleProfessional || claims["email"] != "pete@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("token must expire")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := NewAuthService(memory.NewStore().Users(), "secret", time.Hour)
	if _, err := svc.Register(context.Background(), proInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	attempts := map[string][2]string{
		"wrong password": {"pete@example.com", "wrong-password"},
		"unknown email":  {"nobody@example.com", "hunter22"},
		"empty":          {"", ""},
	}
	for name, creds := range attempts {
		t.Run(name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), creds[0], creds[1])
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
