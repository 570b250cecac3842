package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/employeehub/internal/model"
	"github.com/nurpe/employeehub/internal/service"
)

type contractRequest struct {
	Name       string       `json:"name"`
	CustomerID uint         `json:"customer_id"`
	UserID     uint         `json:"user_id"`
	Status     model.Status `json:"status"`
}

func (r contractRequest) input() service.ContractInput {
	return service.ContractInput{
		Name:       r.Name,
		CustomerID: r.CustomerID,
		UserID:     r.UserID,
		Status:     r.Status,
	}
}

type subContractRequest struct {
	Name   string       `json:"name"`
	UserID uint         `json:"user_id"`
	Status model.Status `json:"status"`
}

func (r subContractRequest) input() service.SubContractInput {
	return service.SubContractInput{Name: r.Name, UserID: r.UserID, Status: r.Status}
}

type commentRequest struct {
	Text string `json:"text"`
}

func (h *Handler) listMyContracts(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	contracts, err := h.contracts.ListMine(c.Request.Context(), principal, c.Query("query"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": withDaysLeft(contracts)})
}

func (h *Handler) listAllContracts(c *gin.Context) {
	contracts, err := h.contracts.ListAll(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": withDaysLeft(contracts)})
}

func (h *Handler) getContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	contract, err := h.contracts.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contractView{Contract: *contract, DaysLeft: contract.DaysLeft()})
}

func (h *Handler) createContract(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	var req contractRequest
	if !h.bindJSON(c, &req) {
		return
	}
	contract, err := h.contracts.Create(c.Request.Context(), principal, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) updateContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req contractRequest
	if !h.bindJSON(c, &req) {
		return
	}
	contract, err := h.contracts.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) deleteContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.contracts.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// exportContracts serves the register as XLSX; scope=all exports every contract.
func (h *Handler) exportContracts(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	mine := c.Query("scope") != "all"
	result, err := h.reports.ContractsRegister(c.Request.Context(), principal, mine, c.Query("query"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, xlsxContentType, result)
}

func (h *Handler) exportContractPDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.reports.ContractSheet(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, "application/pdf", result)
}

func (h *Handler) listMySubContracts(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	subs, err := h.subcontracts.ListMine(c.Request.Context(), principal, c.Query("query"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	views := make([]subContractView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, newSubContractView(sub))
	}
	c.JSON(http.StatusOK, gin.H{"subcontracts": views})
}

func (h *Handler) createSubContract(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req subContractRequest
	if !h.bindJSON(c, &req) {
		return
	}
	sub, err := h.subcontracts.Allocate(c.Request.Context(), principal, contractID, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSubContractView(*sub))
}

func (h *Handler) getSubContract(c *gin.Context) {
	contractID, number, ok := subContractPath(c)
	if !ok {
		return
	}
	sub, err := h.subcontracts.Get(c.Request.Context(), contractID, number)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSubContractView(*sub))
}

func (h *Handler) updateSubContract(c *gin.Context) {
	contractID, number, ok := subContractPath(c)
	if !ok {
		return
	}
	var req subContractRequest
	if !h.bindJSON(c, &req) {
		return
	}
	sub, err := h.subcontracts.Update(c.Request.Context(), contractID, number, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSubContractView(*sub))
}

func (h *Handler) deleteSubContract(c *gin.Context) {
	contractID, number, ok := subContractPath(c)
	if !ok {
		return
	}
	if err := h.subcontracts.Delete(c.Request.Context(), contractID, number); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addComment(c *gin.Context) {
	contractID, number, ok := subContractPath(c)
	if !ok {
		return
	}
	var req commentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	comment, err := h.comments.Add(c.Request.Context(), contractID, number, req.Text)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) recentComments(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	comments, err := h.comments.Recent(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func subContractPath(c *gin.Context) (uint, int, bool) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return 0, 0, false
	}
	number, ok := pathNumber(c)
	if !ok {
		return 0, 0, false
	}
	return contractID, number, true
}

type contractView struct {
	model.Contract
	DaysLeft int `json:"days_left"`
}

func withDaysLeft(contracts []model.Contract) []contractView {
	views := make([]contractView, 0, len(contracts))
	for _, contract := range contracts {
		views = append(views, contractView{Contract: contract, DaysLeft: contract.DaysLeft()})
	}
	return views
}

type subContractView struct {
	model.SubContract
	Code     string `json:"code"`
	DaysLeft int    `json:"days_left"`
}

func newSubContractView(sub model.SubContract) subContractView {
	return subContractView{SubContract: sub, Code: sub.Code(), DaysLeft: sub.DaysLeft()}
}
