package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymdesk-api/internal/application/service"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
)

// BranchHandler handles branch HTTP requests
type BranchHandler struct {
	branchService *service.BranchService
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Create handles creating a branch owned by the caller
// @Summary Create Branch
// @Tags branches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateBranchRequest true "Branch data"
// @Success 201 {object} response.APIResponse
// @Router /branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req request.CreateBranchRequest
	if !bindJSON(c, &req) {
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), &service.CreateBranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		AdminID: adminID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Branch created successfully", gin.H{"branch": branch})
}

// List returns the branches visible to the caller
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branches retrieved successfully", gin.H{"branches": branches})
}

func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	branch, err := h.branchService.GetBranch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch retrieved successfully", gin.H{"branch": branch})
}
