package pool

import "fmt"

// Pool names
const (
	PoolPorts     = "ports"
	PoolEpithets  = "epithets"
	PoolBaseNames = "base_names"
	PoolBollards  = "bollards"
	PoolVesselIDs = "vessel_ids"
)

// WAPortNames are well-known Western Australian ports
var WAPortNames = []string{
	"Port Hedland",
	"Dampier",
	"Fremantle",
	"Kwinana",
	"Bunbury",
	"Esperance",
	"Albany",
	"Geraldton",
	"Broome",
	"Wyndham",
	"Derby",
	"Carnarvon",
}

// Epithets are the first half of a ship name
var Epithets = []string{
	"Majestic", "Sovereign", "Resolute", "Valiant", "Vigilant", "Dauntless",
	"Liberty", "Enduring", "Gallant", "Noble", "Guardian", "Intrepid",
	"Courageous", "Steadfast", "Regal", "Stalwart", "Indomitable", "Invincible",
	"Triumphant", "Victorious", "Glorious", "Fearless", "Mighty", "Bold",
	"Brave", "Formidable", "Relentless", "Valorous", "Audacious", "Diligent",
	"Implacable", "Indefatigable", "Prosperous", "Seaborne", "Seagoing", "Oceanic",
	"Maritime", "Coastal", "Pelagic", "Windward", "Leeward", "Tempestuous",
	"Sturdy",
}

// BaseNames are the second half of a ship name
var BaseNames = []string{
	"Amelia", "Charlotte", "Olivia", "Sophia", "Emily", "Grace",
	"Hana", "Mei", "Yuna", "Sakura", "Aiko", "Keiko",
	"Asha", "Priya", "Anika", "Riya", "Sana", "Neha",
	"Linh", "Thao", "Trang", "Ngoc", "Anh", "Nicha",
	"Camila", "Valentina", "Isabela", "Gabriela", "Lucia", "Paula",
}

// BollardNames returns BOL001 through BOL998
func BollardNames() []string {
	return sequence("BOL%03d", 1, 999)
}

// VesselIDs returns 0001 through 9998
func VesselIDs() []string {
	return sequence("%04d", 1, 9999)
}

// sequence formats every integer in [from, to)
func sequence(format string, from, to int) []string {
	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, fmt.Sprintf(format, i))
	}
	return out
}
