package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/choralis/choir-api/internal/core/ports"
)

type ClaimHandler struct {
	claimService ports.ClaimService
}

func NewClaimHandler(claimService ports.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// Submit files a claim on behalf of the authenticated singer.
//
// @Summary      Submit a claim
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitClaimRequest  true  "Claim details"
// @Success      201   {object}  domain.Claim
// @Failure      400   {object}  map[string]string
// @Router       /v1/singer/claims [post]
func (h *ClaimHandler) Submit(c echo.Context) error {
	var req submitClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	member, err := ctxMember(c)
	if err != nil {
		return err
	}

	claim, err := h.claimService.Submit(c.Request().Context(), ports.SubmitClaimInput{
		SubmittedBy:   member.ID,
		Title:         req.Title,
		Description:   req.Description,
		Severity:      req.Severity,
		IsAnonymous:   req.IsAnonymous,
		AttachmentRef: req.AttachmentRef,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, claim)
}

// ListOwn returns the authenticated member's claims, anonymous ones included.
//
// @Summary      List my claims
// @Tags         claims
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  claimListResponse
// @Router       /v1/singer/claims [get]
func (h *ClaimHandler) ListOwn(c echo.Context) error {
	member, err := ctxMember(c)
	if err != nil {
		return err
	}
	claims, err := h.claimService.ListOwn(c.Request().Context(), member.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claimListResponse{Claims: claims, Total: len(claims)})
}

// ListForReview returns every claim for the review board. Submitter identity
// on anonymous claims is blanked by the service before it reaches the wire.
//
// @Summary      List claims for review
// @Tags         claims
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  claimListResponse
// @Router       /v1/discipline/claims [get]
func (h *ClaimHandler) ListForReview(c echo.Context) error {
	claims, err := h.claimService.ListForReview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claimListResponse{Claims: claims, Total: len(claims)})
}

// UpdateStatus applies a review transition to a claim.
//
// @Summary      Update claim status
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Claim ID"
// @Param        body  body      updateClaimStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Claim
// @Failure      422   {object}  map[string]string
// @Router       /v1/discipline/claims/{id}/status [put]
func (h *ClaimHandler) UpdateStatus(c echo.Context) error {
	var req updateClaimStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	member, err := ctxMember(c)
	if err != nil {
		return err
	}

	claim, err := h.claimService.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, member.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claim)
}
