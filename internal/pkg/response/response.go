package response

import "github.com/gofiber/fiber/v3"

type SemanticResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PageResponse carries paging fields next to data at the top level.
type PageResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	TotalCount int    `json:"totalCount"`
	Limit      int    `json:"limit"`
}

type Pagination struct {
	Page       int
	TotalPages int
	TotalCount int
	Limit      int
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "Not Authorized"
	MessageForbidden           = "Access Denied."
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

func Success(c fiber.Ctx, status int, message string, data any) error {
	st := normalizeStatus(status)
	return c.Status(st).JSON(SemanticResponse{Success: true, Message: normalizeMessage(message, st), Data: data})
}

func Paginated(c fiber.Ctx, message string, data any, p Pagination) error {
	return c.Status(fiber.StatusOK).JSON(PageResponse{
		Success:    true,
		Message:    normalizeMessage(message, fiber.StatusOK),
		Data:       data,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		TotalCount: p.TotalCount,
		Limit:      p.Limit,
	})
}

func Error(c fiber.Ctx, status int, message string, data any) error {
	st := normalizeStatus(status)
	return c.Status(st).JSON(SemanticResponse{Success: false, Message: normalizeMessage(message, st), Data: data})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func normalizeMessage(message string, status int) string {
	if message != "" {
		return message
	}
	return DefaultMessage(status)
}

func DefaultMessage(status int) string {
	switch status {
	case fiber.StatusOK:
		return MessageOK
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
