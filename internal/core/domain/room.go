package domain

type Room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"isActive"`
}

func ActiveRooms(rooms []Room) []Room {
	active := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		if room.IsActive {
			active = append(active, room)
		}
	}
	return active
}
