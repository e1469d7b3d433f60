package http

import (
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/generated/servers"
)

func toOrder(o *order.Order) servers.Order {
	items := o.Items()
	response := servers.Order{
		Id:          o.ID().Bytes(),
		UserId:      o.UserID(),
		Region:      o.Region().String(),
		Status:      o.Status().String(),
		TotalAmount: o.TotalAmount().String(),
		CreatedAt:   o.CreatedAt(),
		Items:       make([]servers.OrderItem, len(items)),
	}

	for i, item := range items {
		response.Items[i] = servers.OrderItem{
			MenuItemId: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			Price:      item.Price().String(),
			LineTotal:  item.LineTotal().String(),
		}
	}

	if pm := o.Payment(); pm != nil {
		details := pm.Details()
		if details == nil {
			details = map[string]string{}
		}
		response.PaymentMethod = &servers.PaymentMethod{
			Type:      pm.Type().String(),
			Details:   details,
			Completed: pm.IsCompleted(),
		}
	}

	return response
}

func toRestaurant(r *catalog.Restaurant) servers.Restaurant {
	menu := r.MenuItems()
	response := servers.Restaurant{
		Id:        r.ID().Bytes(),
		Name:      r.Name(),
		Region:    r.Region().String(),
		CreatedAt: r.CreatedAt(),
		MenuItems: make([]servers.MenuItem, len(menu)),
	}
	for i, m := range menu {
		response.MenuItems[i] = servers.MenuItem{
			Id:    m.ID().Bytes(),
			Name:  m.Name(),
			Price: m.Price().String(),
		}
	}
	return response
}

func toRestaurantPage(resp queries.ListRestaurantsQueryResponse) servers.RestaurantPage {
	data := make([]servers.Restaurant, len(resp.Restaurants))
	for i, r := range resp.Restaurants {
		data[i] = toRestaurant(r)
	}

	return servers.RestaurantPage{
		Data: data,
		Meta: servers.PageMeta{
			Total:       resp.Total,
			Page:        resp.Page,
			Limit:       resp.Limit,
			TotalPages:  resp.TotalPages,
			HasNextPage: resp.HasNextPage,
			HasPrevPage: resp.HasPrevPage,
		},
	}
}
