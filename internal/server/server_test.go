package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carousell/ct-go/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/support-desk/internal/models"
	mdw "github.com/nguyentranbao-ct/support-desk/internal/server/middleware"
)

type stubTicketUsecase struct {
	listTickets  func(ctx context.Context) ([]models.Ticket, error)
	getTicket    func(ctx context.Context, id uint) (*models.Ticket, error)
	createTicket func(ctx context.Context, insert models.InsertTicket) (*models.Ticket, error)
	updateTicket func(ctx context.Context, id uint, updates models.UpdateTicket) (*models.Ticket, error)
	listMessages func(ctx context.Context, ticketID uint) ([]models.ChatMessage, error)
	postMessage  func(ctx context.Context, ticketID uint, insert models.InsertChatMessage) (*models.ChatMessage, error)
	suggestions  func(ctx context.Context, ticketID uint) ([]string, error)
}

func (s *stubTicketUsecase) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return s.listTickets(ctx)
}

func (s *stubTicketUsecase) GetTicket(ctx context.Context, id uint) (*models.Ticket, error) {
	return s.getTicket(ctx, id)
}

func (s *stubTicketUsecase) CreateTicket(ctx context.Context, insert models.InsertTicket) (*models.Ticket, error) {
	return s.createTicket(ctx, insert)
}

func (s *stubTicketUsecase) UpdateTicket(ctx context.Context, id uint, updates models.UpdateTicket) (*models.Ticket, error) {
	return s.updateTicket(ctx, id, updates)
}

func (s *stubTicketUsecase) ListMessages(ctx context.Context, ticketID uint) ([]models.ChatMessage, error) {
	return s.listMessages(ctx, ticketID)
}

func (s *stubTicketUsecase) PostMessage(ctx context.Context, ticketID uint, insert models.InsertChatMessage) (*models.ChatMessage, error) {
	return s.postMessage(ctx, ticketID, insert)
}

func (s *stubTicketUsecase) Suggestions(ctx context.Context, ticketID uint) ([]string, error) {
	return s.suggestions(ctx, ticketID)
}

type stubUserUsecase struct {
	getProfile     func(ctx context.Context, userID uint) (*models.User, error)
	updateProfile  func(ctx context.Context, userID uint, updates models.UpdateUser) (*models.User, error)
	changePassword func(ctx context.Context, userID uint, req models.UpdatePassword) error
	activities     func(ctx context.Context, userID uint, page, limit int) (*models.ActivityPage, error)
}

func (s *stubUserUsecase) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.getProfile(ctx, userID)
}

func (s *stubUserUsecase) UpdateProfile(ctx context.Context, userID uint, updates models.UpdateUser) (*models.User, error) {
	return s.updateProfile(ctx, userID, updates)
}

func (s *stubUserUsecase) ChangePassword(ctx context.Context, userID uint, req models.UpdatePassword) error {
	return s.changePassword(ctx, userID, req)
}

func (s *stubUserUsecase) Activities(ctx context.Context, userID uint, page, limit int) (*models.ActivityPage, error) {
	return s.activities(ctx, userID, page, limit)
}

func newTestEcho(t *testing.T, users *stubUserUsecase, tickets *stubTicketUsecase) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.HideBanner = true
	e.Validator = mdw.NewValidator()
	e.HTTPErrorHandler = mdw.ErrorHandler(logger.MustNamed("test"))

	api := e.Group("/api", mdw.AgentIdentity(1))
	if users != nil {
		uc := NewUserController(users)
		api.GET("/user", uc.GetUser)
		api.PATCH("/user", uc.UpdateUser)
		api.PATCH("/user/password", uc.UpdatePassword)
		api.GET("/user/activities", uc.GetActivities)
	}
	if tickets != nil {
		tc := NewTicketController(tickets)
		api.GET("/tickets", tc.ListTickets)
		api.POST("/tickets", tc.CreateTicket)
		api.GET("/tickets/:id", tc.GetTicket)
		api.PATCH("/tickets/:id", tc.UpdateTicket)
		api.GET("/tickets/:id/messages", tc.ListMessages)
		api.POST("/tickets/:id/messages", tc.PostMessage)
		api.POST("/tickets/:id/suggestions", tc.Suggestions)
	}
	return e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
