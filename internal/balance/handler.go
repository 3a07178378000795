package balance

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/divvyhq/divvy/pkg/response"
)

// Handler handles HTTP requests for balance queries
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}", h.GroupBalances)
	r.Get("/group/{groupId}/settle-up", h.SettleUp)
	r.Get("/group/{groupId}/member/{memberId}", h.MemberBalance)

	return r
}

// memberBalanceView adds a settled-within-epsilon status to a net balance.
type memberBalanceView struct {
	MemberBalance
	Status string `json:"status"` // owed, owes, settled
}

func view(b MemberBalance) memberBalanceView {
	status := "settled"
	switch {
	case !IsSettledUp(b.Net) && b.Net.IsPositive():
		status = "owed"
	case !IsSettledUp(b.Net) && b.Net.IsNegative():
		status = "owes"
	}
	return memberBalanceView{MemberBalance: b, Status: status}
}

// GroupBalances handles GET /balances/group/{groupId}
// @Summary      Group balances
// @Description  Net position of every member of the group, derived from unsettled splits
// @Tags         balances
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse
// @Router       /balances/group/{groupId} [get]
func (h *Handler) GroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "groupId"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, err := h.service.GroupBalances(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to compute balances")
		return
	}

	views := make([]memberBalanceView, len(balances))
	for i, b := range balances {
		views[i] = view(b)
	}
	response.JSON(w, http.StatusOK, views)
}

// MemberBalance handles GET /balances/group/{groupId}/member/{memberId}
// @Summary      Member balance
// @Description  One member's net position within a group; positive means they are owed money
// @Tags         balances
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        memberId path string true "Member ID"
// @Success      200 {object} response.APIResponse
// @Router       /balances/group/{groupId}/member/{memberId} [get]
func (h *Handler) MemberBalance(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "groupId"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}
	memberID, err := uuid.Parse(chi.URLParam(r, "memberId"))
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	b, err := h.service.MemberBalance(r.Context(), groupID, memberID)
	if err != nil {
		response.InternalError(w, "Failed to compute balance")
		return
	}

	response.JSON(w, http.StatusOK, view(*b))
}

// SettleUp handles GET /balances/group/{groupId}/settle-up
// @Summary      Suggested settle-up transfers
// @Description  Greedy matching of debtors and creditors into a short transfer list
// @Tags         balances
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse
// @Router       /balances/group/{groupId}/settle-up [get]
func (h *Handler) SettleUp(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "groupId"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	transfers, err := h.service.SettleUp(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to compute settle-up plan")
		return
	}

	response.JSON(w, http.StatusOK, transfers)
}
