package security

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vzoverflow/vzoverflow/handler"
	"github.com/vzoverflow/vzoverflow/pkg/binder"
	"github.com/vzoverflow/vzoverflow/pkg/password"
	"github.com/vzoverflow/vzoverflow/pkg/qrcode"
	"github.com/vzoverflow/vzoverflow/svc/twofactor"
)

// qrSize is the pixel size of the enrollment QR image.
const qrSize = 256

// Service exposes the account security flows over HTTP: authenticator
// enrollment, enabling and disabling two-factor auth, second-factor
// verification, and password changes.
type Service struct {
	twofa        *twofactor.Service
	storage      UserStorage
	errorHandler handler.ErrorHandler[handler.Context]
}

// NewService wires the HTTP service. errorHandler may be nil, in which case
// a plain non-logging JSON error handler is used.
func NewService(twofa *twofactor.Service, storage UserStorage, errorHandler handler.ErrorHandler[handler.Context]) *Service {
	if errorHandler == nil {
		errorHandler = handler.NewErrorHandler(slog.New(slog.DiscardHandler))
	}
	return &Service{
		twofa:        twofa,
		storage:      storage,
		errorHandler: errorHandler,
	}
}

// Handle returns the module router. Every route requires an authenticated
// user id on the request context (see WithUserID).
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(RequireUser)

	r.Post("/authenticator/setup", handler.Wrap(s.beginSetup,
		handler.WithErrorHandler[handler.Context, emptyRequest](s.errorHandler),
	))
	r.Post("/authenticator/confirm", handler.Wrap(s.confirmSetup,
		handler.WithBinder[handler.Context, codeRequest](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, codeRequest](s.errorHandler),
	))
	r.Post("/otp/request", handler.Wrap(s.requestCode,
		handler.WithBinder[handler.Context, otpRequest](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, otpRequest](s.errorHandler),
	))
	r.Post("/enable", handler.Wrap(s.enable,
		handler.WithBinder[handler.Context, codeRequest](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, codeRequest](s.errorHandler),
	))
	r.Post("/disable", handler.Wrap(s.disable,
		handler.WithBinder[handler.Context, codeRequest](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, codeRequest](s.errorHandler),
	))
	r.Post("/verify", handler.Wrap(s.verify,
		handler.WithBinder[handler.Context, verifyRequest](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, verifyRequest](s.errorHandler),
	))
	r.Post("/password", handler.Wrap(s.changePassword,
		handler.WithBinder[handler.Context, changePasswordRequest](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, changePasswordRequest](s.errorHandler),
	))

	return r
}

type emptyRequest struct{}

type codeRequest struct {
	Code string `json:"code"`
}

type otpRequest struct {
	Purpose string `json:"purpose"`
}

type verifyRequest struct {
	Purpose string `json:"purpose"`
	Code    string `json:"code"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	Code            string `json:"code"`
}

// setupResponse is the authenticator enrollment payload.
type setupResponse struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
	QRCode          string `json:"qr_code"`
	ManualEntryKey  string `json:"manual_entry_key"`
}

func (s *Service) beginSetup(ctx handler.Context, _ emptyRequest) handler.Response {
	user, err := s.currentUser(ctx)
	if err != nil {
		return handler.JSONError(asHTTPError(err))
	}

	setup, err := s.twofa.BeginAuthenticatorSetup(ctx, user.Subject())
	if err != nil {
		return handler.JSONError(asHTTPError(err))
	}

	qr, err := qrcode.GenerateBase64Image(setup.ProvisioningURI, qrSize)
	if err != nil {
		return handler.JSONError(asHTTPError(err))
	}

	return handler.JSON(setupResponse{
		Secret:          setup.Secret,
		ProvisioningURI: setup.ProvisioningURI,
		QRCode:          qr,
		ManualEntryKey:  setup.ManualEntryKey,
	})
}

func (s *Service) confirmSetup(ctx handler.Context, req codeRequest) handler.Response {
	if valErr := validateCodeField(req.Code); valErr != nil {
		return handler.JSONError(valErr)
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return handler.JSONError(asHTTPError(err))
	}

	if err := s.twofa.ConfirmAuthenticatorSetup(ctx, user.Subject(), req.Code); err != nil {
		return handler.JSONError(asHTTPError(err))
	}
	return handler.Empty()
}

func (s *Service) requestCode(ctx handler.Context, req otpRequest) handler.Response {
	purpose := twofactor.Purpose(req.Purpose)
	if !purpose.Valid() {
		valErr := handler.NewValidationError()
		valErr.Add("purpose", "unknown purpose")
		return handler.JSONError(valErr)
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return handler.JSONError(asHTTPError(err))
	}

	if err := s.twofa.RequestEmailCode(ctx, user.Subject(), purpose); err != nil {
		return handler.JSONError(asHTTPError(err))
	}
	return handler.EmptyWithStatus(http.StatusAccepted)
}

func (s *Service) enable(ctx handler.Context, req codeRequest) handler.Response {
	if valErr := validateCodeField(req.Code); valErr != nil {
		return handler.JSONError(valErr)
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return handler.JSONError(asHTTPError(err))
	}

	if err := s.twofa.EnableWithEmail(ctx, user.Subject(), req.Code); err != nil {
		return handler.JSONError(asHTTPError(err))
	}
	return handler.Empty()
}

func (s *Service) disable(ctx handler.Context, req codeRequest) handler.Response {
	if valErr := validateCodeField(req.Code); valErr != nil {
		return handler.JSONError(valErr)
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return handler.JSONError(asHTTPError(err))
	}

	if err := s.twofa.Disable(ctx, user.Subject(), req.Code); err != nil {
		return handler.JSONError(asHTTPError(err))
	}
	return handler.Empty()
}

func (s *Service) verify(ctx handler.Context, req verifyRequest) handler.Response {
	purpose := twofactor.Purpose(req.Purpose)
	if !purpose.Valid() {
		valErr := handler.NewValidationError()
		valErr.Add("purpose", "unknown purpose")
		return handler.JSONError(valErr)
	}
	if valErr := validateCodeField(req.Code); valErr != nil {
		return handler.JSONError(valErr)
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return handler.JSONError(asHTTPError(err))
	}

	if err := s.twofa.Verify(ctx, user.Subject(), purpose, req.Code); err != nil {
		return handler.JSONError(asHTTPError(err))
	}
	return handler.Empty()
}

func (s *Service) changePassword(ctx handler.Context, req changePasswordRequest) handler.Response {
	valErr := handler.NewValidationError()
	if req.CurrentPassword == "" {
		valErr.Add("current_password", "required")
	}
	if len(req.NewPassword) < 8 {
		valErr.Add("new_password", "must be at least 8 characters")
	}
	if !valErr.IsEmpty() {
		return handler.JSONError(valErr)
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return handler.JSONError(asHTTPError(err))
	}

	if err := password.Verify([]byte(user.PasswordHash), req.CurrentPassword); err != nil {
		return handler.JSONError(handler.NewHTTPError(http.StatusForbidden, "wrong_password"))
	}

	// A subject with 2FA on must also present a second factor.
	if user.TwoFactorEnabled {
		if vErr := validateCodeField(req.Code); vErr != nil {
			return handler.JSONError(vErr)
		}
		if err := s.twofa.Verify(ctx, user.Subject(), twofactor.PurposeChangePassword, req.Code); err != nil {
			return handler.JSONError(asHTTPError(err))
		}
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return handler.JSONError(asHTTPError(err))
	}
	if err := s.storage.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return handler.JSONError(asHTTPError(err))
	}
	return handler.Empty()
}

// validateCodeField checks the submitted code is present. Format checking
// stays inside the twofactor service so HTTP and non-HTTP callers agree.
func validateCodeField(code string) handler.ValidationError {
	if code == "" {
		valErr := handler.NewValidationError()
		valErr.Add("code", "required")
		return valErr
	}
	return nil
}

// asHTTPError maps domain errors onto transport errors. Unknown errors pass
// through and render as 500.
func asHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return handler.ErrUnauthorized
	case errors.Is(err, twofactor.ErrInvalidCode):
		return handler.NewHTTPError(http.StatusBadRequest, "invalid_or_expired_code")
	case errors.Is(err, twofactor.ErrInvalidPurpose):
		return handler.ErrBadRequest
	case errors.Is(err, twofactor.ErrMissingDeliveryAddress):
		return handler.ErrUnprocessableEntity
	case errors.Is(err, twofactor.ErrFailedToDeliverCode):
		return handler.ErrServiceUnavailable
	default:
		return err
	}
}
