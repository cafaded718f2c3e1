package service

import (
	bookingModel "resort/internal/domains/booking/model"
	foodModel "resort/internal/domains/food/model"
	guestServiceModel "resort/internal/domains/guestservice/model"
	packageBookingModel "resort/internal/domains/packagebooking/model"
	roomModel "resort/internal/domains/room/model"
	"resort/shared/constant"
	gDto "resort/shared/dto"
)

// argUnbilled keeps the filter value apart from the billing_status being set by the same update.
const argUnbilled = "unbilled_billing_status"

func filterRoomByNumber(number string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldNumber,
				Value:    number,
				Operator: gDto.FilterOperatorEq,
				Table:    roomModel.TableName,
			},
		},
	}
}

func filterLinksByRoom(roomID, table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// filterByIDsAndStatus matches any status when statuses is nil.
func filterByIDsAndStatus(ids, statuses []string, table string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    table,
			},
		},
	}

	if statuses != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    bookingModel.FieldStatus,
			Value:    statuses,
			Operator: gDto.FilterOperatorIn,
			Table:    table,
		})
	}

	return filter
}

func filterByStatus(statuses []string, table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Value:    statuses,
				Operator: gDto.FilterOperatorIn,
				Table:    table,
			},
		},
	}
}

// filterUnbilledOrders matches the food orders a checkout charges for and later marks billed.
func filterUnbilledOrders(roomIDs []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    foodModel.FieldRoomID,
				Value:    roomIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    foodModel.TableOrder,
			},
			gDto.Filter{
				Field:    foodModel.FieldStatus,
				Value:    foodModel.OrderStatusActive,
				Operator: gDto.FilterOperatorEq,
				Table:    foodModel.TableOrder,
			},
			gDto.Filter{
				Field:    foodModel.FieldBillingStatus,
				ArgName:  argUnbilled,
				Value:    constant.BillingStatusUnbilled,
				Operator: gDto.FilterOperatorEq,
				Table:    foodModel.TableOrder,
			},
		},
	}
}

// filterUnbilledAssignments matches the service assignments a checkout charges for and later marks billed.
func filterUnbilledAssignments(roomIDs []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    guestServiceModel.FieldRoomID,
				Value:    roomIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    guestServiceModel.TableAssignment,
			},
			gDto.Filter{
				Field:    guestServiceModel.FieldStatus,
				Value:    guestServiceModel.StatusCancelled,
				Operator: gDto.FilterOperatorNotEq,
				Table:    guestServiceModel.TableAssignment,
			},
			gDto.Filter{
				Field:    guestServiceModel.FieldBillingStatus,
				ArgName:  argUnbilled,
				Value:    constant.BillingStatusUnbilled,
				Operator: gDto.FilterOperatorEq,
				Table:    guestServiceModel.TableAssignment,
			},
		},
	}
}

func latestByCheckIn(table string) gDto.QueryParams {
	return gDto.QueryParams{
		Page:    1,
		Limit:   1,
		SortBy:  table + "." + packageBookingModel.FieldCheckIn,
		SortDir: gDto.SortDirDesc,
	}
}
