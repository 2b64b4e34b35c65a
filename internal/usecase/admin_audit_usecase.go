package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 監査ログの閲覧（管理者のみ。ガードはmiddleware側）
type AdminAuditUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAdminAuditUsecase(auditRepo repo.AuditLogRepository) *AdminAuditUsecase {
	return &AdminAuditUsecase{auditRepo: auditRepo}
}

type ListAuditLogsInput struct {
	Action       string
	ResourceType string
	ResourceID   int64
	Limit        int
	Offset       int
}

func (u *AdminAuditUsecase) ListAuditLogs(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	filter := repo.AuditLogFilter{
		Limit:  in.Limit,
		Offset: in.Offset,
	}

	if in.Action != "" {
		action := model.AuditAction(in.Action)
		switch action {
		case model.AuditActionCreateProduct, model.AuditActionUpdateProduct,
			model.AuditActionDeleteProduct, model.AuditActionUpdateOrderStatus:
			filter.Action = &action
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid action")
		}
	}

	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		if rt != model.AuditResourceProduct && rt != model.AuditResourceOrder {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid resource_type")
		}
		filter.ResourceType = &rt
	}

	if in.ResourceID > 0 {
		id := in.ResourceID
		filter.ResourceID = &id
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
