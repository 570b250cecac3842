package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/employeehub/internal/service"
)

type informationRequest struct {
	PermanentAddress       string `json:"permanent_address"`
	PermanentDescriptiveNo string `json:"permanent_descriptive_number"`
	PermanentPostalCode    string `json:"permanent_postal_code"`
	City                   string `json:"city"`
	PhoneNumber            string `json:"phone_number"`
	EmploymentStart        string `json:"employment_start"`
	BirthDay               string `json:"birth_day"`
	ContractType           string `json:"contract_type"`
}

type bankAccountRequest struct {
	AccountPrefix string `json:"account_prefix"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	BankName      string `json:"bank_name"`
	IBAN          string `json:"iban"`
	SwiftBIC      string `json:"swift_bic"`
}

type emergencyContactRequest struct {
	Name              string `json:"name"`
	Address           string `json:"address"`
	DescriptiveNumber string `json:"descriptive_number"`
	PostalCode        string `json:"postal_code"`
	City              string `json:"city"`
	PhoneNumber       string `json:"phone_number"`
}

type securityQuestionRequest struct {
	QuestionID uint   `json:"security_question_id"`
	Answer     string `json:"security_answer"`
}

func (h *Handler) getProfile(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) listSecurityQuestions(c *gin.Context) {
	questions, err := h.profiles.Questions(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func (h *Handler) saveInformation(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	var req informationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	var bad []service.Violation
	employmentStart, err := parseDate(req.EmploymentStart)
	if err != nil {
		bad = append(bad, service.Violation{Field: "employment_start", Message: "enter a valid date"})
	}
	birthDay, err := parseDate(req.BirthDay)
	if err != nil {
		bad = append(bad, service.Violation{Field: "birth_day", Message: "enter a valid date"})
	}
	if len(bad) > 0 {
		h.handleError(c, &service.ValidationError{Violations: bad})
		return
	}

	info, err := h.profiles.SaveInformation(c.Request.Context(), principal.UserID, service.InformationInput{
		PermanentAddress:       req.PermanentAddress,
		PermanentDescriptiveNo: req.PermanentDescriptiveNo,
		PermanentPostalCode:    req.PermanentPostalCode,
		City:                   req.City,
		PhoneNumber:            req.PhoneNumber,
		EmploymentStart:        employmentStart,
		BirthDay:               birthDay,
		ContractType:           req.ContractType,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handler) saveBankAccount(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	var req bankAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	account, err := h.profiles.SaveBankAccount(c.Request.Context(), principal.UserID, service.BankAccountInput{
		AccountPrefix: req.AccountPrefix,
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
		BankName:      req.BankName,
		IBAN:          req.IBAN,
		SwiftBIC:      req.SwiftBIC,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *Handler) saveEmergencyContacts(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	var req []emergencyContactRequest
	if !h.bindJSON(c, &req) {
		return
	}
	inputs := make([]service.EmergencyContactInput, 0, len(req))
	for _, item := range req {
		inputs = append(inputs, service.EmergencyContactInput{
			Name:              item.Name,
			Address:           item.Address,
			DescriptiveNumber: item.DescriptiveNumber,
			PostalCode:        item.PostalCode,
			City:              item.City,
			PhoneNumber:       item.PhoneNumber,
		})
	}
	contacts, err := h.profiles.ReplaceEmergencyContacts(c.Request.Context(), principal.UserID, inputs)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"emergency_contacts": contacts})
}

func (h *Handler) changeSecurityQuestion(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	var req securityQuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.profiles.ChangeSecurityQuestion(c.Request.Context(), principal.UserID, req.QuestionID, req.Answer); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
