package handlers

import "courier-admin/internal/domain"

func shipmentToResponse(s domain.Shipment) shipmentDTO {
	return shipmentDTO{
		ID:               s.ID,
		TrackingNumber:   s.TrackingNumber,
		BranchID:         s.BranchID,
		SenderName:       s.SenderName,
		SenderPhone:      s.SenderPhone,
		SenderAddress:    s.SenderAddress,
		RecipientName:    s.RecipientName,
		RecipientPhone:   s.RecipientPhone,
		RecipientAddress: s.RecipientAddress,
		Status:           s.Status,
		DeliveryUserID:   s.DeliveryUserID,
		Notes:            s.Notes,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func detailsToResponse(d domain.ShipmentDetails) shipmentDetailsDTO {
	out := shipmentDetailsDTO{Shipment: shipmentToResponse(d.Shipment)}
	if d.Branch != nil {
		b := branchToResponse(*d.Branch)
		out.Branch = &b
	}
	if d.DeliveryUser != nil {
		u := userToResponse(*d.DeliveryUser)
		out.DeliveryUser = &u
	}
	return out
}

func trackingToResponse(e domain.TrackingEntry) trackingDTO {
	return trackingDTO{
		ID:         e.ID,
		ShipmentID: e.ShipmentID,
		Status:     e.Status,
		Remarks:    e.Remarks,
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt,
	}
}

func trackingListToResponse(list []domain.TrackingEntry) []trackingDTO {
	out := make([]trackingDTO, 0, len(list))
	for _, e := range list {
		out = append(out, trackingToResponse(e))
	}
	return out
}

func (r updateStatusRequest) toModel(id int64) domain.StatusUpdate {
	return domain.StatusUpdate{
		ShipmentID:     id,
		Status:         r.Status,
		DeliveryUserID: r.DeliveryUserID,
		Notes:          r.Notes,
	}
}

func branchToResponse(b domain.Branch) branchDTO {
	return branchDTO{
		ID:      b.ID,
		Name:    b.Name,
		Code:    b.Code,
		Address: b.Address,
		Phone:   b.Phone,
		Email:   b.Email,
		Status:  b.Status,
	}
}

func branchesToResponse(list []domain.Branch) []branchDTO {
	out := make([]branchDTO, 0, len(list))
	for _, b := range list {
		out = append(out, branchToResponse(b))
	}
	return out
}

func (r createBranchRequest) toModel() domain.Branch {
	return domain.Branch{
		Name:    r.Name,
		Code:    r.Code,
		Address: r.Address,
		Phone:   r.Phone,
		Email:   r.Email,
		Status:  r.Status,
	}
}

func userToResponse(u domain.User) userDTO {
	return userDTO{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		BranchID: u.BranchID,
		Status:   u.Status,
	}
}

func usersToResponse(list []domain.User) []userDTO {
	out := make([]userDTO, 0, len(list))
	for _, u := range list {
		out = append(out, userToResponse(u))
	}
	return out
}

func (r createUserRequest) toModel() domain.NewUser {
	return domain.NewUser{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Role:     r.Role,
		BranchID: r.BranchID,
		Password: r.Password,
	}
}
