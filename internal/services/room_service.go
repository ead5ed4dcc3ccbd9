package services

import (
	"github.com/moftahak/studio-service/internal/models"
)

// Pure mutations over one room's item list. TotalCost is recomputed
// from scratch after every change so it can never drift from the items;
// that is a correctness invariant, not an optimization.

func RecomputeRoomTotal(room *models.RoomData) {
	total := 0.0
	for _, item := range room.Items {
		total += item.Price * float64(item.Quantity)
	}
	room.TotalCost = total
}

func AddRoomItem(room *models.RoomData, item models.RoomItem) bool {
	if item.Price < 0 || item.Quantity < 1 {
		return false
	}
	room.Items = append(room.Items, item)
	RecomputeRoomTotal(room)
	return true
}

func UpdateRoomItemPrice(room *models.RoomData, itemID string, price float64) bool {
	if price < 0 {
		return false
	}
	for i := range room.Items {
		if room.Items[i].ID == itemID {
			room.Items[i].Price = price
			RecomputeRoomTotal(room)
			return true
		}
	}
	return false
}

func UpdateRoomItemQuantity(room *models.RoomData, itemID string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	for i := range room.Items {
		if room.Items[i].ID == itemID {
			room.Items[i].Quantity = quantity
			RecomputeRoomTotal(room)
			return true
		}
	}
	return false
}

func RemoveRoomItem(room *models.RoomData, itemID string) bool {
	for i := range room.Items {
		if room.Items[i].ID == itemID {
			room.Items = append(room.Items[:i], room.Items[i+1:]...)
			RecomputeRoomTotal(room)
			return true
		}
	}
	return false
}
