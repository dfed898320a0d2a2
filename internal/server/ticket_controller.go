package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/support-desk/internal/models"
	"github.com/nguyentranbao-ct/support-desk/internal/usecase"
)

type TicketController interface {
	ListTickets(c echo.Context) error
	GetTicket(c echo.Context) error
	CreateTicket(c echo.Context) error
	UpdateTicket(c echo.Context) error
	ListMessages(c echo.Context) error
	PostMessage(c echo.Context) error
	Suggestions(c echo.Context) error
}

type ticketController struct {
	tickets usecase.TicketUsecase
}

func NewTicketController(tickets usecase.TicketUsecase) TicketController {
	return &ticketController{tickets: tickets}
}

func (tc *ticketController) ListTickets(c echo.Context) error {
	ctx := c.Request().Context()
	tickets, err := tc.tickets.ListTickets(ctx)
	if err != nil {
		return mapTicketErr(err)
	}
	return c.JSON(http.StatusOK, tickets)
}

func (tc *ticketController) GetTicket(c echo.Context) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	ticket, err := tc.tickets.GetTicket(ctx, id)
	if err != nil {
		return mapTicketErr(err)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (tc *ticketController) CreateTicket(c echo.Context) error {
	var req models.InsertTicket
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	ticket, err := tc.tickets.CreateTicket(ctx, req)
	if err != nil {
		return mapTicketErr(err)
	}
	return c.JSON(http.StatusCreated, ticket)
}

func (tc *ticketController) UpdateTicket(c echo.Context) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	var req models.UpdateTicket
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	ticket, err := tc.tickets.UpdateTicket(ctx, id, req)
	if err != nil {
		return mapTicketErr(err)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (tc *ticketController) ListMessages(c echo.Context) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	messages, err := tc.tickets.ListMessages(ctx, id)
	if err != nil {
		return mapTicketErr(err)
	}
	return c.JSON(http.StatusOK, messages)
}

func (tc *ticketController) PostMessage(c echo.Context) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	var req models.InsertChatMessage
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	message, err := tc.tickets.PostMessage(ctx, id, req)
	if err != nil {
		return mapTicketErr(err)
	}
	return c.JSON(http.StatusCreated, message)
}

func (tc *ticketController) Suggestions(c echo.Context) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	suggestions, err := tc.tickets.Suggestions(ctx, id)
	if err != nil {
		return mapTicketErr(err)
	}
	return c.JSON(http.StatusOK, map[string][]string{
		"suggestions": suggestions,
	})
}

func ticketID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid ticket ID")
	}
	return uint(id), nil
}

func mapTicketErr(err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Ticket not found")
	case errors.Is(err, models.ErrTicketStorageUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return err
}
