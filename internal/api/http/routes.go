package httpapi

import (
	"bytes"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/calendar"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/theme"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

const deprecatedWeatherMessage = "This API endpoint is deprecated. Weather data is now served by /api/v1/weather/forecast and /api/v1/dashboard."

// Deps are the services the HTTP layer needs.
type Deps struct {
	Dashboard *dashboard.Controller
	Forecasts dashboard.Forecaster
	Policy    *calendar.Policy
	Source    string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	h := &handlers{deps: deps}

	app.Get("/health", h.health)
	app.Get("/", h.page)

	// Kept so old clients get a clear answer instead of a 404.
	app.Get("/api/weather", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error":   true,
			"message": deprecatedWeatherMessage,
		})
	})

	v1 := app.Group("/api/v1")
	v1.Get("/dashboard", h.dashboard)
	v1.Get("/weather/forecast", h.forecast)
	v1.Get("/theme", h.theme)
	v1.Get("/calendar", h.calendar)
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

type handlers struct {
	deps Deps
}

func (h *handlers) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "weather-dashboard",
		"source":  h.deps.Source,
	})
}

// dashboardQuery holds query parameters shared by the page and the dashboard API.
type dashboardQuery struct {
	Location string `query:"location" validate:"omitempty,max=200"`
	Date     string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Current  string `query:"current" validate:"omitempty,datetime=2006-01-02"`
	From     string `query:"from" validate:"omitempty,oneof=daily picker"`
}

func (h *handlers) bindDashboard(c *fiber.Ctx) (dashboard.Query, error) {
	var req dashboardQuery
	if err := c.QueryParser(&req); err != nil {
		return dashboard.Query{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return dashboard.Query{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	q := dashboard.Query{
		Location:   req.Location,
		FromDaily:  req.From == "daily",
		HideWind:   !c.QueryBool("wind", true),
		HideClouds: !c.QueryBool("clouds", true),
	}
	if req.Current != "" {
		current, err := h.deps.Policy.ParseDate(req.Current)
		if err != nil {
			return dashboard.Query{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		q.Current = current
	}
	if req.Date != "" {
		date, err := h.deps.Policy.ParseDate(req.Date)
		if err != nil {
			return dashboard.Query{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		q.Date = &date
	}
	return q, nil
}

func (h *handlers) dashboard(c *fiber.Ctx) error {
	q, err := h.bindDashboard(c)
	if err != nil {
		return err
	}
	return c.JSON(h.deps.Dashboard.Build(c.UserContext(), q))
}

func (h *handlers) page(c *fiber.Ctx) error {
	q, err := h.bindDashboard(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := dashboard.Render(&buf, h.deps.Dashboard.Build(c.UserContext(), q)); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// forecastQuery holds query parameters for the raw forecast endpoint.
type forecastQuery struct {
	Location string `query:"location" validate:"required,max=200"`
	Date     string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *handlers) forecast(c *fiber.Ctx) error {
	var req forecastQuery
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	window := h.deps.Policy.Window()
	date := window.Today
	if req.Date != "" {
		parsed, err := h.deps.Policy.ParseDate(req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		date, err = calendar.ClampOrReject(parsed, window)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, h.deps.Policy.Describe())
		}
	}

	f, err := h.deps.Forecasts.Forecast(c.UserContext(), weather.Request{Location: req.Location, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrLocationRequired):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, weather.ErrFetchFailed):
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather forecast")
		}
	}
	return c.JSON(f)
}

type themeQuery struct {
	Condition string `query:"condition" validate:"max=200"`
}

func (h *handlers) theme(c *fiber.Ctx) error {
	var req themeQuery
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	style := theme.Resolve(req.Condition)
	surface := theme.NewSurface()
	theme.Apply(style, surface)

	return c.JSON(fiber.Map{
		"condition":  req.Condition,
		"style":      style,
		"variables":  surface.Variables(),
		"css":        surface.CSS(),
		"themeColor": style.ThemeColor(),
		"icon":       theme.Icon(req.Condition),
	})
}

type calendarQuery struct {
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

type dayState struct {
	Date     string `json:"date"`
	Disabled bool   `json:"disabled"`
}

func (h *handlers) calendar(c *fiber.Ctx) error {
	var req calendarQuery
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	window := h.deps.Policy.Window()
	date := window.Today
	if req.Date != "" {
		parsed, err := h.deps.Policy.ParseDate(req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		date = parsed
	}

	state := func(t time.Time) dayState {
		return dayState{Date: t.Format(time.DateOnly), Disabled: calendar.IsDateDisabled(t, window)}
	}

	return c.JSON(fiber.Map{
		"today":       window.Today.Format(time.DateOnly),
		"minDate":     window.MinDate().Format(time.DateOnly),
		"maxDate":     window.MaxDate().Format(time.DateOnly),
		"date":        state(date),
		"previous":    state(calendar.PreviousDay(date)),
		"next":        state(calendar.NextDay(date)),
		"description": h.deps.Policy.Describe(),
	})
}
