package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
	pkgAuth "github.com/polkiloo/eatery/internal/pkg/auth"
	"github.com/polkiloo/eatery/internal/server/http/dto"
	"github.com/polkiloo/eatery/internal/server/http/middleware"
)

// CurrentIdentity extracts the signed-in identity from context, or nil.
func CurrentIdentity(c *gin.Context) *model.Identity {
	return middleware.CurrentSession(c).Identity
}

// writeError maps domain errors onto HTTP statuses. Unknown errors become 500
// and are attached to the context for the request logger.
func writeError(c *gin.Context, err error) {
	var (
		missing *domainErrors.MissingFieldError
		invalid *domainErrors.InvalidFieldError
		authErr *domainErrors.AuthError
		persist *domainErrors.PersistenceError
	)
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Field: missing.Field})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Field: invalid.Field})
	case errors.Is(err, domainErrors.ErrUnknownMenuItem),
		errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, pkgAuth.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "password must be at least 6 characters", Field: "password"})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: authErr.Error()})
	case errors.Is(err, domainErrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrTransitionDenied):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &persist):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "could not save your request, please try again"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}

func toSessionResponse(session model.Session, admin bool) dto.SessionResponse {
	if !session.Authenticated() {
		return dto.SessionResponse{}
	}
	return dto.SessionResponse{
		Authenticated: true,
		UID:           session.Identity.UID,
		Email:         session.Identity.Email,
		Admin:         admin,
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.LineItem{Name: item.Name, Price: item.Price, Quantity: item.Quantity})
	}
	return dto.OrderResponse{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		Address:      order.Address,
		Notes:        order.Notes,
		Items:        items,
		Total:        order.Total,
		Status:       string(order.Status),
		Date:         order.Date,
		Day:          order.Day,
		UserID:       order.UserID,
		UpdatedAt:    order.UpdatedAt,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}

func toCountsResponse(counts model.OrderCounts) dto.CountsResponse {
	return dto.CountsResponse{
		Total:      counts.Total,
		Pending:    counts.Pending,
		InProgress: counts.InProgress,
		Delivered:  counts.Delivered,
	}
}

func toOrderForm(form model.OrderForm) dto.OrderForm {
	sides := form.Sides
	if sides == nil {
		sides = []string{}
	}
	return dto.OrderForm{
		Dish:    form.Dish,
		Sides:   sides,
		Drink:   form.Drink,
		Notes:   form.Notes,
		Name:    form.Name,
		Phone:   form.Phone,
		Address: form.Address,
	}
}

func fromOrderForm(form dto.OrderForm) model.OrderForm {
	return model.OrderForm{
		Dish:    form.Dish,
		Sides:   form.Sides,
		Drink:   form.Drink,
		Notes:   form.Notes,
		Name:    form.Name,
		Phone:   form.Phone,
		Address: form.Address,
	}
}

func toProfileResponse(p *model.Profile) dto.ProfileResponse {
	favorites := p.FavoriteItems
	if favorites == nil {
		favorites = []string{}
	}
	return dto.ProfileResponse{
		UID:           p.UID,
		DisplayName:   p.DisplayName,
		Email:         p.Email,
		PhoneNumber:   p.PhoneNumber,
		Address:       p.Address,
		PhotoURL:      p.PhotoURL,
		FavoriteItems: favorites,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		LastLogin:     p.LastLogin,
	}
}

func toMenuResponse(menu model.Menu) dto.MenuResponse {
	convert := func(items []model.MenuItem) []dto.MenuItem {
		out := make([]dto.MenuItem, 0, len(items))
		for _, item := range items {
			out = append(out, dto.MenuItem{Key: item.Key, Name: item.Name, Price: item.Price})
		}
		return out
	}
	return dto.MenuResponse{
		Currency: model.Currency,
		Mains:    convert(menu.Mains),
		Sides:    convert(menu.Sides),
		Drinks:   convert(menu.Drinks),
	}
}
