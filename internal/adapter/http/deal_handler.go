package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/labstack/echo/v4"

	"credit-conveyor/internal/domain/client"
	"credit-conveyor/internal/domain/credit"
	"credit-conveyor/internal/usecase/calculator"
	"credit-conveyor/internal/usecase/deal"
)

type DealHandler struct {
	uc *deal.Usecase
	cv *CustomValidator
}

func NewDealHandler(uc *deal.Usecase) *DealHandler {
	return &DealHandler{uc: uc, cv: NewValidator()}
}

func (h *DealHandler) Register(e *echo.Echo, m ...echo.MiddlewareFunc) {
	g := e.Group("/deal", m...)
	g.POST("/statement", h.CreateStatement)
	g.POST("/offer/select", h.SelectOffer)
	g.POST("/calculate/:statementId", h.Calculate)
	g.POST("/document/:statementId/send", h.SendDocuments)
	g.PUT("/document/:statementId/status", h.DocumentCreated)
	g.POST("/document/:statementId/sign", h.SignDocuments)
	g.POST("/document/:statementId/code", h.VerifyCode)
	e.GET("/deal/statement/:statementId", h.GetStatement)
	e.GET("/deal/statement", h.GetAllStatements)
	e.GET("/deal/document/:statementId/data", h.DocumentData)
}

type createStatementReq struct {
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	Term           int             `json:"term" validate:"required,min=6"`
	FirstName      string          `json:"first_name" validate:"required,min=2,max=30,name"`
	LastName       string          `json:"last_name" validate:"required,min=2,max=30,name"`
	MiddleName     string          `json:"middle_name" validate:"omitempty,min=2,max=30,name"`
	Email          string          `json:"email" validate:"required,email"`
	BirthDate      time.Time       `json:"birth_date" validate:"required,adult"`
	PassportSeries string          `json:"passport_series" validate:"required,passport_series"`
	PassportNumber string          `json:"passport_number" validate:"required,passport_number"`
}

func (h *DealHandler) CreateStatement(c echo.Context) error {
	var req createStatementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if req.Amount.LessThan(decimal.NewFromInt(calculator.MinAmount)) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "Amount", Message: "must be at least 20000"}},
		})
	}

	offers, err := h.uc.CreateStatement(c.Request().Context(), calculator.LoanRequest{
		Amount:         req.Amount,
		Term:           req.Term,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MiddleName:     req.MiddleName,
		Email:          req.Email,
		BirthDate:      req.BirthDate,
		PassportSeries: req.PassportSeries,
		PassportNumber: req.PassportNumber,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, offers)
}

func (h *DealHandler) SelectOffer(c echo.Context) error {
	var offer credit.Offer
	if err := c.Bind(&offer); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if offer.StatementID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "StatementID", Message: "is required"}},
		})
	}
	if err := h.uc.ApplyOffer(c.Request().Context(), offer); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

type finishRegistrationReq struct {
	Gender              client.Gender        `json:"gender" validate:"required"`
	MaritalStatus       client.MaritalStatus `json:"marital_status" validate:"required"`
	DependentAmount     int                  `json:"dependent_amount" validate:"gte=0"`
	PassportIssueDate   time.Time            `json:"passport_issue_date" validate:"required"`
	PassportIssueBranch string               `json:"passport_issue_branch" validate:"required"`
	Employment          client.Employment    `json:"employment" validate:"required"`
	AccountNumber       string               `json:"account_number" validate:"required"`
}

func (h *DealHandler) Calculate(c echo.Context) error {
	var req finishRegistrationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	err := h.uc.CalculateCredit(c.Request().Context(), c.Param("statementId"), deal.FinishRegistrationInput{
		Gender:              req.Gender,
		MaritalStatus:       req.MaritalStatus,
		DependentAmount:     req.DependentAmount,
		PassportIssueDate:   req.PassportIssueDate,
		PassportIssueBranch: req.PassportIssueBranch,
		Employment:          req.Employment,
		AccountNumber:       req.AccountNumber,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *DealHandler) SendDocuments(c echo.Context) error {
	if err := h.uc.SendDocuments(c.Request().Context(), c.Param("statementId")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *DealHandler) DocumentCreated(c echo.Context) error {
	if err := h.uc.DocumentCreated(c.Request().Context(), c.Param("statementId")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *DealHandler) SignDocuments(c echo.Context) error {
	if err := h.uc.SignDocuments(c.Request().Context(), c.Param("statementId")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

type verifyCodeReq struct {
	SesCode string `json:"ses_code" validate:"required,ses_code"`
}

func (h *DealHandler) VerifyCode(c echo.Context) error {
	var req verifyCodeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if err := h.uc.VerifyCode(c.Request().Context(), c.Param("statementId"), req.SesCode); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *DealHandler) GetStatement(c echo.Context) error {
	dto, err := h.uc.GetStatement(c.Request().Context(), c.Param("statementId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) GetAllStatements(c echo.Context) error {
	dtos, err := h.uc.GetAllStatements(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *DealHandler) DocumentData(c echo.Context) error {
	data, err := h.uc.DocumentData(c.Request().Context(), c.Param("statementId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}
