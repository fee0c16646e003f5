package handlers

import (
	"github.com/spec-kit/nexushub/internal/api/dto"
	"github.com/spec-kit/nexushub/internal/domain"
	"github.com/spec-kit/nexushub/internal/service"
)

func identityResponse(identity domain.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		ID:        identity.ID,
		Name:      identity.Name,
		Email:     identity.Email,
		Role:      identity.Role,
		AvatarURL: identity.AvatarURL,
	}
}

func bulletinResponse(m domain.BulletinMessage) dto.BulletinMessageResponse {
	return dto.BulletinMessageResponse{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		Category:   m.Category,
		IsPinned:   m.IsPinned,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
		CreatedAt:  m.CreatedAt,
	}
}

func bulletinDraftPayload(d domain.BulletinDraft) dto.BulletinDraftPayload {
	return dto.BulletinDraftPayload{Title: d.Title, Content: d.Content, Category: d.Category, IsPinned: d.IsPinned, Topic: d.Topic}
}

func calendarEventResponse(e domain.CalendarEvent) dto.CalendarEventResponse {
	return dto.CalendarEventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start,
		End:         e.End,
		OwnerID:     e.OwnerID,
		OwnerName:   e.OwnerName,
		Color:       e.Color,
	}
}

func calendarDraftPayload(d domain.CalendarDraft) dto.CalendarDraftPayload {
	return dto.CalendarDraftPayload{
		Title:       d.Title,
		Date:        d.Date,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Description: d.Description,
		Color:       d.Color,
	}
}

func weekResponse(view service.WeekView) dto.WeekResponse {
	resp := dto.WeekResponse{
		Offset: view.Offset,
		Start:  view.Start.Format(dayLayout),
		End:    view.End.Format(dayLayout),
		Hours:  service.GridHours(),
		Days:   make([]dto.WeekDayResponse, 0, len(view.Days)),
	}
	for _, day := range view.Days {
		dayResp := dto.WeekDayResponse{Date: day.Date.Format(dayLayout), Today: day.Today}
		for _, cell := range day.Cells {
			cellResp := dto.WeekCellResponse{Hour: cell.Hour, Events: make([]dto.CalendarEventResponse, 0, len(cell.Events))}
			for _, ev := range cell.Events {
				cellResp.Events = append(cellResp.Events, calendarEventResponse(ev))
			}
			dayResp.Cells = append(dayResp.Cells, cellResp)
		}
		resp.Days = append(resp.Days, dayResp)
	}
	return resp
}

func exchangeResponse(e domain.Exchange) dto.ExchangeResponse {
	return dto.ExchangeResponse{
		ID:             e.ID,
		CustomerName:   e.CustomerName,
		Items:          e.Items,
		TrackingNumber: e.TrackingNumber,
		Status:         e.Status,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
		AuthorName:     e.AuthorName,
	}
}

func exchangeDraftPayload(d domain.ExchangeDraft) dto.ExchangeDraftPayload {
	return dto.ExchangeDraftPayload{CustomerName: d.CustomerName, Items: d.Items, TrackingNumber: d.TrackingNumber, Status: d.Status, Notes: d.Notes}
}

func returnResponse(r domain.ReturnItem) dto.ReturnResponse {
	return dto.ReturnResponse{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		OrderNumber:  r.OrderNumber,
		Reason:       r.Reason,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		AuthorName:   r.AuthorName,
	}
}

func returnDraftPayload(d domain.ReturnDraft) dto.ReturnDraftPayload {
	return dto.ReturnDraftPayload{CustomerName: d.CustomerName, OrderNumber: d.OrderNumber, Reason: d.Reason, Status: d.Status}
}

func reshipmentResponse(r domain.Reshipment) dto.ReshipmentResponse {
	return dto.ReshipmentResponse{
		ID:               r.ID,
		CustomerName:     r.CustomerName,
		OriginalOrderRef: r.OriginalOrderRef,
		Reason:           r.Reason,
		TrackingNumber:   r.TrackingNumber,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
		AuthorName:       r.AuthorName,
	}
}

func reshipmentDraftPayload(d domain.ReshipmentDraft) dto.ReshipmentDraftPayload {
	return dto.ReshipmentDraftPayload{
		CustomerName:     d.CustomerName,
		OriginalOrderRef: d.OriginalOrderRef,
		Reason:           d.Reason,
		TrackingNumber:   d.TrackingNumber,
		Status:           d.Status,
	}
}

func missingResponse(m domain.MissingProduct) dto.MissingProductResponse {
	return dto.MissingProductResponse{
		ID:               m.ID,
		ProductName:      m.ProductName,
		ExpectedLocation: m.ExpectedLocation,
		Status:           m.Status,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
		ReportedBy:       m.ReportedBy,
	}
}

func missingDraftPayload(d domain.MissingDraft) dto.MissingDraftPayload {
	return dto.MissingDraftPayload{ProductName: d.ProductName, ExpectedLocation: d.ExpectedLocation, Status: d.Status, Notes: d.Notes}
}

func employeeResponse(e domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		RoleLabel: e.RoleLabel,
		Email:     e.Email,
		Presence:  e.Presence,
		AvatarURL: e.AvatarURL,
	}
}

func employeeDraftPayload(d domain.EmployeeDraft) dto.EmployeeDraftPayload {
	return dto.EmployeeDraftPayload{Name: d.Name, RoleLabel: d.RoleLabel, Email: d.Email}
}

func chatResponse(snapshot service.ChatSnapshot) dto.ChatResponse {
	resp := dto.ChatResponse{
		Peer:     employeeResponse(snapshot.Peer),
		Messages: make([]dto.ChatMessageResponse, 0, len(snapshot.Messages)),
		Input:    snapshot.Input,
	}
	for _, msg := range snapshot.Messages {
		resp.Messages = append(resp.Messages, chatMessageResponse(msg))
	}
	return resp
}

func chatMessageResponse(msg domain.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Text:       msg.Text,
		Timestamp:  msg.Timestamp,
	}
}

func activityResponse(entry domain.ActivityEntry) dto.ActivityEntryResponse {
	return dto.ActivityEntryResponse{
		ID:        entry.ID,
		Board:     entry.Board,
		Action:    entry.Action,
		RecordID:  entry.RecordID,
		ActorID:   entry.ActorID,
		ActorName: entry.ActorName,
		Payload:   entry.Payload,
		CreatedAt: entry.CreatedAt,
	}
}
