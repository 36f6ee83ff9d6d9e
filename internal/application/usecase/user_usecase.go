package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/internal/application/ports"
	"github.com/jhoicas/tenant-admin/internal/application/saga"
	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
	"github.com/jhoicas/tenant-admin/internal/domain/user"
	"github.com/jhoicas/tenant-admin/pkg/logger"
)

// Nombres de los pasos de las sagas de alta y baja.
const (
	stepIdentity = "identity"
	stepValidate = "validate"
	stepPersist  = "persist"
	stepRecord   = "record"
)

// orphanReporter es lo que necesita UserUseCase del registro de huérfanos.
// Lo implementa *OrphanUseCase.
type orphanReporter interface {
	Report(ctx context.Context, o *entity.Orphan)
}

// UserUseCase aplica reglas de negocio para las cuentas: altas (individual y masiva),
// consultas, actualizaciones y bajas coordinando proveedor de identidad y almacén.
type UserUseCase struct {
	repo           repository.UserRepository
	identity       ports.IdentityProvider
	orphans        orphanReporter
	log            *logger.Logger
	passwordLength int
	now            func() time.Time
}

// NewUserUseCase construye el caso de uso. passwordLength es la longitud de las
// contraseñas generadas.
func NewUserUseCase(
	repo repository.UserRepository,
	identity ports.IdentityProvider,
	orphans orphanReporter,
	log *logger.Logger,
	passwordLength int,
) *UserUseCase {
	return &UserUseCase{
		repo:           repo,
		identity:       identity,
		orphans:        orphans,
		log:            log,
		passwordLength: passwordLength,
		now:            time.Now,
	}
}

// List devuelve todos los registros en el orden del almacén.
func (uc *UserUseCase) List(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, entityToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un registro. Devuelve domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(u), nil
}

// newAccount datos de una cuenta a crear.
type newAccount struct {
	Email            string
	Password         string
	DisplayName      string
	CompanyName      string
	Role             string
	Department       string
	Position         string
	SubscriptionType *string
}

// Create alta individual. Si GeneratePassword es true se ignora Password y se genera una.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	password := in.Password
	generated := ""
	if in.GeneratePassword {
		pw, err := user.GeneratePassword(uc.passwordLength)
		if err != nil {
			return nil, err
		}
		password, generated = pw, pw
	}

	email := strings.TrimSpace(in.Email)
	if email == "" || password == "" {
		return nil, domain.NewInputError("Email and password are required")
	}
	if len(password) < user.MinPasswordLength {
		return nil, domain.NewInputError(fmt.Sprintf("Password must be at least %d characters", user.MinPasswordLength))
	}

	uid, err := uc.createAccount(ctx, newAccount{
		Email:            email,
		Password:         password,
		DisplayName:      in.DisplayName,
		CompanyName:      in.CompanyName,
		Role:             in.Role,
		Department:       in.Department,
		Position:         in.Position,
		SubscriptionType: in.SubscriptionType,
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateUserResponse{
		Success:  true,
		Message:  "User created successfully",
		UID:      uid,
		Password: generated,
	}, nil
}

// BulkCreate da de alta varias cuentas de una misma empresa con contraseñas generadas.
// El fallo de una fila no detiene el lote.
func (uc *UserUseCase) BulkCreate(ctx context.Context, in dto.BulkCreateRequest) (*dto.BulkCreateResponse, error) {
	company := strings.TrimSpace(in.CompanyName)
	if company == "" {
		return nil, domain.NewInputError("companyName is required")
	}
	complete := 0
	for _, e := range in.Users {
		if strings.TrimSpace(e.Email) != "" && strings.TrimSpace(e.DisplayName) != "" {
			complete++
		}
	}
	if complete == 0 {
		return nil, domain.NewInputError("At least one user with displayName and email is required")
	}

	out := &dto.BulkCreateResponse{
		Success: true,
		Results: []dto.BulkResult{},
		Errors:  []dto.BulkError{},
	}
	for _, e := range in.Users {
		uid, password, err := uc.createBulkEntry(ctx, company, in.SubscriptionType, e)
		if err != nil {
			uc.log.Warn().Err(err).Str("email", e.Email).Msg("alta masiva: fila rechazada")
			out.Errors = append(out.Errors, dto.BulkError{
				Email:       e.Email,
				DisplayName: e.DisplayName,
				Error:       ClientMessage(err),
			})
			continue
		}
		out.Results = append(out.Results, dto.BulkResult{
			Email:       strings.TrimSpace(e.Email),
			DisplayName: e.DisplayName,
			UID:         uid,
			Password:    password,
		})
	}
	out.Summary = dto.BulkSummary{
		Total:   len(in.Users),
		Success: len(out.Results),
		Failed:  len(out.Errors),
	}
	uc.log.Info().
		Str("company", company).
		Int("total", out.Summary.Total).
		Int("success", out.Summary.Success).
		Int("failed", out.Summary.Failed).
		Msg("alta masiva completada")
	return out, nil
}

func (uc *UserUseCase) createBulkEntry(ctx context.Context, company string, subscription *string, e dto.BulkUserEntry) (uid, password string, err error) {
	email := strings.TrimSpace(e.Email)
	if email == "" {
		return "", "", domain.NewInputError("Email is required")
	}
	if strings.TrimSpace(e.DisplayName) == "" {
		return "", "", domain.NewInputError("Display name is required")
	}
	password, err = user.GeneratePassword(uc.passwordLength)
	if err != nil {
		return "", "", err
	}
	uid, err = uc.createAccount(ctx, newAccount{
		Email:            email,
		Password:         password,
		DisplayName:      e.DisplayName,
		CompanyName:      company,
		Role:             entity.RoleUser,
		SubscriptionType: subscription,
	})
	if err != nil {
		return "", "", err
	}
	return uid, password, nil
}

// createAccount saga de alta: identidad, registro normalizado y validado, persistencia.
// Si un paso falla se borra la identidad creada; si ese borrado también falla queda
// registrado como huérfano y el error envuelve domain.ErrOrphanedIdentity.
func (uc *UserUseCase) createAccount(ctx context.Context, a newAccount) (string, error) {
	var (
		uid    string
		record *entity.User
	)

	err := saga.Run(ctx,
		saga.Step{
			Name: stepIdentity,
			Do: func(ctx context.Context) error {
				id, err := uc.identity.CreateUser(ctx, entity.NewIdentity{
					Email:       a.Email,
					Password:    a.Password,
					DisplayName: a.DisplayName,
				})
				if err != nil {
					return err
				}
				uid = id
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return uc.identity.DeleteUser(ctx, uid)
			},
		},
		saga.Step{
			Name: stepValidate,
			Do: func(context.Context) error {
				record = uc.buildRecord(uid, a)
				if res := user.ValidateRecord(record); !res.Valid {
					return &domain.ValidationError{Errors: res.Errors}
				}
				return nil
			},
		},
		saga.Step{
			Name: stepPersist,
			Do: func(ctx context.Context) error {
				if err := uc.repo.Create(ctx, record); err != nil {
					return fmt.Errorf("guardar registro: %w", err)
				}
				return nil
			},
		},
	)
	if err == nil {
		uc.log.Info().Str("uid", uid).Str("email", a.Email).Msg("usuario creado")
		return uid, nil
	}

	se, ok := saga.AsError(err)
	if !ok {
		return "", err
	}
	if se.Compensated() {
		if se.Step != stepIdentity {
			uc.log.Warn().Err(se.Err).Str("uid", uid).Str("step", se.Step).Msg("alta revertida")
		}
		return "", se.Err
	}

	uc.orphans.Report(context.WithoutCancel(ctx), &entity.Orphan{
		UID:        uid,
		Email:      a.Email,
		Kind:       entity.OrphanIdentityWithoutRecord,
		Reason:     se.Error(),
		DetectedAt: uc.now(),
	})
	return "", fmt.Errorf("%w: %w", domain.ErrOrphanedIdentity, se.Err)
}

// buildRecord arma el registro normalizado de una cuenta nueva.
func (uc *UserUseCase) buildRecord(uid string, a newAccount) *entity.User {
	now := uc.now()
	displayName := strings.TrimSpace(a.DisplayName)
	if displayName == "" {
		displayName = user.DefaultDisplayName(a.Email)
	}
	draft := &entity.User{
		ID:               uid,
		Email:            a.Email,
		DisplayName:      displayName,
		CompanyName:      strings.TrimSpace(a.CompanyName),
		Role:             a.Role,
		Status:           entity.StatusActive,
		Department:       a.Department,
		Position:         a.Position,
		SubscriptionType: a.SubscriptionType,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return user.FromDocument(uid, user.Normalize(user.ToDocument(draft)))
}

// Update mezcla los campos presentes y fija updatedAt. No vuelve a validar el registro:
// si el resultado no cumple el esquema solo se deja un aviso en el log.
func (uc *UserUseCase) Update(ctx context.Context, id string, patch entity.UserPatch) (*dto.UserResponse, error) {
	updated, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if res := user.ValidateRecord(updated); !res.Valid {
		uc.log.Warn().Str("uid", id).Strs("errors", res.Errors).Msg("registro actualizado no cumple el esquema")
	}
	return entityToUserResponse(updated), nil
}

// Delete borra identidad y registro. Si el registro no existe no se toca la identidad.
// Si la identidad se borró pero el registro no, queda registrado como huérfano y el
// error envuelve domain.ErrOrphanedIdentity.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = saga.Run(ctx,
		saga.Step{
			Name: stepIdentity,
			Do: func(ctx context.Context) error {
				err := uc.identity.DeleteUser(ctx, id)
				if errors.Is(err, domain.ErrNotFound) {
					uc.log.Warn().Str("uid", id).Msg("la identidad ya no existía; se borra solo el registro")
					return nil
				}
				return err
			},
		},
		saga.Step{
			Name: stepRecord,
			Do: func(ctx context.Context) error {
				return uc.repo.Delete(ctx, id)
			},
		},
	)
	if err == nil {
		uc.log.Info().Str("uid", id).Msg("usuario eliminado")
		return nil
	}

	se, ok := saga.AsError(err)
	if !ok {
		return err
	}
	if se.Step == stepIdentity {
		return fmt.Errorf("borrar identidad: %w", se.Err)
	}
	uc.orphans.Report(context.WithoutCancel(ctx), &entity.Orphan{
		UID:        id,
		Email:      existing.Email,
		Kind:       entity.OrphanRecordWithoutIdentity,
		Reason:     se.Err.Error(),
		DetectedAt: uc.now(),
	})
	return fmt.Errorf("%w: %w", domain.ErrOrphanedIdentity, se.Err)
}

// ClientMessage texto legible para el cliente a partir de un error de alta.
func ClientMessage(err error) string {
	var inputErr *domain.InputError
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &inputErr):
		return inputErr.Message
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.Is(err, domain.ErrOrphanedIdentity):
		return "Account was created but could not be rolled back; it has been flagged for reconciliation"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "The email address is already in use"
	case errors.Is(err, domain.ErrInvalidInput):
		return "The email address is malformed"
	default:
		return err.Error()
	}
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		UID:              u.ID,
		Email:            u.Email,
		DisplayName:      u.DisplayName,
		CompanyName:      u.CompanyName,
		Role:             u.Role,
		Status:           u.Status,
		Department:       u.Department,
		Position:         u.Position,
		SubscriptionType: u.SubscriptionType,
		PhotoURL:         u.PhotoURL,
		CreatedAt:        u.CreatedAt,
		CreatedBy:        u.CreatedBy,
		UpdatedAt:        u.UpdatedAt,
		LastLoginAt:      u.LastLoginAt,
	}
}
