package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"task-manager/backend/logging"
	"task-manager/backend/models"
	"task-manager/backend/services"
	"task-manager/backend/utils"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token together with the account it
// belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthHandler struct {
	service *services.UserService
}

func NewAuthHandler(service *services.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register mounts signup and login outside the auth middleware and /me
// behind it.
func (h *AuthHandler) Register(public, protected *mux.Router) {
	public.HandleFunc("/auth/signup", h.Signup).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", h.Me).Methods(http.MethodGet)
}

func (h *AuthHandler) fail(w http.ResponseWriter, err error, action string) {
	var validation *models.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, models.Fail(validation.Message))
	case errors.Is(err, services.ErrEmailTaken):
		writeJSON(w, http.StatusBadRequest, models.Fail("An account with that email already exists"))
	case errors.Is(err, services.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, models.Fail("Invalid email or password"))
	default:
		logging.Logger.Errorf("Event ID: AUTH_OP_FAILED, Description: %s failed: %v", action, err)
		writeJSON(w, http.StatusInternalServerError, models.Fail("Error during "+action))
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Fail("Invalid request payload"))
		return
	}

	user, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, err, "signup")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex())
	if err != nil {
		h.fail(w, err, "signup")
		return
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: New account created for %s", user.Email)
	writeJSON(w, http.StatusCreated, models.OKMessage("User registered successfully", AuthResponse{Token: token, User: user}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Fail("Invalid request payload"))
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, err, "login")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex())
	if err != nil {
		h.fail(w, err, "login")
		return
	}

	writeJSON(w, http.StatusOK, models.OKMessage("Login successful", AuthResponse{Token: token, User: user}))
}

// Me returns the account behind the presented token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.Fail("User not found"))
			return
		}
		h.fail(w, err, "fetching user")
		return
	}
	writeJSON(w, http.StatusOK, models.OK(user))
}
