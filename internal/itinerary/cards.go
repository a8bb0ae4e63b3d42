package itinerary

import (
	"fmt"
	"strings"

	"github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-desk/internal/domain"
)

// Card renders one item as an atomic block: icon, title, key fields and a
// muted metadata line. Unrecognised items get a marked fallback block.
func Card(it Item) Node {
	switch v := it.(type) {
	case FlightItem:
		return flightCard(v.Flight)
	case PrivateJetItem:
		return jetCard(v.Jet)
	case TrainItem:
		return trainCard(v.Train)
	case HotelItem:
		return hotelCard(v)
	case EventItem:
		return eventCard(v.Event)
	case RentalCarItem:
		return rentalCard(v)
	case CarWithDriverItem:
		return chauffeurCard(v.Car)
	case EmbassyItem:
		return embassyCard(v.Service)
	case MeetAssistItem:
		return meetAssistCard(v.Service)
	}
	return AtomicBlock{
		Class: "item item-unknown",
		Children: []Node{
			Icon{Name: "question"},
			Heading{Level: 3, Text: "Unsupported item"},
			Text{Text: fmt.Sprintf("Item of type %T cannot be displayed", it), Muted: true},
		},
	}
}

// Label is a short human name for the item's type and role.
func Label(it Item) string {
	switch v := it.(type) {
	case FlightItem:
		return "Flight"
	case PrivateJetItem:
		return "Private jet"
	case TrainItem:
		return "Train"
	case HotelItem:
		if v.IsCheckIn {
			return "Hotel check-in"
		}
		return "Hotel check-out"
	case EventItem:
		return "Event"
	case RentalCarItem:
		if v.IsPickup {
			return "Rental car pickup"
		}
		return "Rental car return"
	case CarWithDriverItem:
		return "Car with driver"
	case EmbassyItem:
		return "Embassy appointment"
	case MeetAssistItem:
		return "Meet & assist"
	}
	return "Item"
}

// Title is the headline of an item's card.
func Title(it Item) string {
	switch v := it.(type) {
	case FlightItem:
		return flightTitle(v.Flight)
	case PrivateJetItem:
		return jetTitle(v.Jet)
	case TrainItem:
		return trainTitle(v.Train)
	case HotelItem:
		return orDash(v.Hotel.Name)
	case EventItem:
		return orDash(v.Event.Name)
	case RentalCarItem:
		return orDash(v.Car.VehicleType)
	case CarWithDriverItem:
		return orDash(v.Car.VehicleType)
	case EmbassyItem:
		return embassyTitle(v.Service)
	case MeetAssistItem:
		return meetAssistTitle(v.Service)
	}
	return Label(it)
}

func card(class, icon, label, title string, fields []Field, meta ...string) AtomicBlock {
	children := []Node{
		Icon{Name: icon},
		Text{Text: label, Muted: true},
		Heading{Level: 3, Text: title},
	}
	for _, f := range fields {
		children = append(children, f)
	}
	if line := joinNonEmpty(" · ", meta...); line != "" {
		children = append(children, Text{Text: line, Muted: true})
	}
	return AtomicBlock{Class: "item item-" + class, Children: children}
}

func flightTitle(f domain.Flight) string {
	if t := joinNonEmpty(" ", f.Airline, f.FlightNumber); t != "" {
		return t
	}
	return "Flight"
}

func flightCard(f domain.Flight) Node {
	return card("flight", "plane", "Flight", flightTitle(f), []Field{
		{Label: "Route", Value: route(f.DepartureAirport, f.ArrivalAirport)},
		{Label: "Departs", Value: orDash(f.DepartureTime)},
		{Label: "Arrives", Value: arrival(f.ArrivalDate, f.DepartureDate, f.ArrivalTime)},
		{Label: "Booking ref", Value: orDash(f.BookingReference)},
	}, f.CabinClass)
}

func jetTitle(j domain.PrivateJet) string {
	if j.AircraftType != "" {
		return j.AircraftType
	}
	return "Private jet"
}

func jetCard(j domain.PrivateJet) Node {
	return card("private-jet", "jet", "Private jet", jetTitle(j), []Field{
		{Label: "Route", Value: route(j.DepartureAirport, j.ArrivalAirport)},
		{Label: "Departs", Value: orDash(j.DepartureTime)},
		{Label: "Arrives", Value: arrival(j.ArrivalDate, j.DepartureDate, j.ArrivalTime)},
		{Label: "Booking ref", Value: orDash(j.BookingReference)},
	}, j.Operator, j.TailNumber)
}

func trainTitle(t domain.Train) string {
	if s := joinNonEmpty(" ", t.Operator, t.TrainNumber); s != "" {
		return s
	}
	return "Train"
}

func trainCard(t domain.Train) Node {
	return card("train", "train", "Train", trainTitle(t), []Field{
		{Label: "Route", Value: route(t.DepartureStation, t.ArrivalStation)},
		{Label: "Departs", Value: orDash(t.DepartureTime)},
		{Label: "Arrives", Value: arrival(t.ArrivalDate, t.DepartureDate, t.ArrivalTime)},
		{Label: "Class", Value: orDash(t.Class)},
	}, t.BookingReference)
}

func hotelCard(v HotelItem) Node {
	h := v.Hotel
	label, timeLabel := "Check-out", "Check-out time"
	if v.IsCheckIn {
		label, timeLabel = "Check-in", "Check-in time"
	}
	node := card("hotel", "hotel", label, orDash(h.Name), []Field{
		{Label: "Location", Value: orDash(joinNonEmpty(", ", h.City, h.Country))},
		{Label: timeLabel, Value: TimeOf(v)},
		{Label: "Confirmation", Value: orDash(h.ConfirmationNumber)},
	}, h.Address)

	if v.IsCheckIn && len(h.Rooms) > 0 {
		rooms := []Node{Text{Text: "Rooms"}}
		for _, r := range h.Rooms {
			rooms = append(rooms, Text{Text: roomLine(r)})
		}
		node.Children = append(node.Children, Section{Class: "rooms", Children: rooms})
	}
	return node
}

func roomLine(r domain.HotelRoom) string {
	price := ""
	if r.NightlyPrice != nil {
		price = strings.TrimSpace(fmt.Sprintf("%.2f %s", *r.NightlyPrice, r.Currency)) + "/night"
	}
	capacity, baths := "", ""
	if r.Capacity > 0 {
		capacity = plural(r.Capacity, "guest")
	}
	if r.Bathrooms > 0 {
		baths = plural(r.Bathrooms, "bathroom")
	}
	number := ""
	if r.RoomNumber != "" {
		number = "Room " + r.RoomNumber
	}
	return orDash(joinNonEmpty(" · ", r.Category, number, price, r.BedType, capacity, baths))
}

func eventCard(e domain.Event) Node {
	node := card("event", "calendar", "Event", orDash(e.Name), []Field{
		{Label: "Location", Value: orDash(e.Location)},
		{Label: "Time", Value: timeRange(e.StartTime, e.EndTime)},
	}, e.Notes)
	if e.EventType != "" {
		node.Children = append(node.Children, Badge{Text: e.EventType})
	}
	return node
}

func rentalCard(v RentalCarItem) Node {
	c := v.Car
	label, location, at := "Rental car return", c.ReturnLocation, c.ReturnTime
	if v.IsPickup {
		label, location, at = "Rental car pickup", c.PickupLocation, c.PickupTime
	}
	return card("rental-car", "car", label, orDash(c.VehicleType), []Field{
		{Label: "Location", Value: orDash(location)},
		{Label: "Time", Value: orDash(at)},
		{Label: "Company", Value: orDash(c.Company)},
		{Label: "Booking ref", Value: orDash(c.BookingReference)},
	})
}

func chauffeurCard(c domain.CarWithDriver) Node {
	return card("car-with-driver", "car-driver", "Car with driver", orDash(c.VehicleType), []Field{
		{Label: "Pickup", Value: orDash(c.PickupLocation)},
		{Label: "Time", Value: orDash(c.PickupTime)},
		{Label: "Driver", Value: orDash(c.DriverName)},
		{Label: "Company", Value: orDash(c.Company)},
	}, c.DropoffLocation, c.DriverPhone)
}

func embassyTitle(e domain.EmbassyService) string {
	if e.EmbassyName != "" {
		return e.EmbassyName
	}
	return orDash(e.ServiceType)
}

func embassyCard(e domain.EmbassyService) Node {
	node := card("embassy", "embassy", "Embassy appointment", embassyTitle(e), []Field{
		{Label: "Address", Value: orDash(e.Address)},
		{Label: "Appointment", Value: orDash(e.AppointmentTime)},
		{Label: "Application no.", Value: orDash(e.ApplicationNumber)},
	})
	if e.ServiceType != "" {
		node.Children = append(node.Children, Badge{Text: e.ServiceType})
	}
	return node
}

func meetAssistTitle(m domain.MeetAssist) string {
	airport := orDash(m.Airport)
	if m.AirportName != "" {
		airport += " (" + m.AirportName + ")"
	}
	return airport
}

// serviceTypePhrase is the human wording of a meet-and-assist direction.
func serviceTypePhrase(t domain.MeetAssistServiceType) string {
	switch t {
	case domain.MeetAssistArrival:
		return "Arrival"
	case domain.MeetAssistDeparture:
		return "Departure"
	case domain.MeetAssistBoth:
		return "Arrival & Departure"
	case domain.MeetAssistTransit:
		return "Transit"
	}
	return Placeholder
}

func meetAssistCard(m domain.MeetAssist) Node {
	node := card("meet-assist", "concierge", "Meet & assist", meetAssistTitle(m), []Field{
		{Label: "Service", Value: serviceTypePhrase(m.ServiceType)},
		{Label: "Meeting point", Value: orDash(m.MeetingPoint)},
		{Label: "Time", Value: orDash(m.ServiceTime)},
		{Label: "Flight", Value: orDash(m.FlightNumber)},
		{Label: "Provider", Value: orDash(m.Provider)},
	})
	if m.VIPTier != "" && m.VIPTier != domain.VIPTierStandard {
		node.Children = append(node.Children, Badge{Text: string(m.VIPTier), Tone: "accent"})
	}
	for _, inc := range []struct {
		on   bool
		name string
	}{
		{m.FastTrack, "Fast track"},
		{m.Lounge, "Lounge"},
		{m.Porterage, "Porterage"},
		{m.Buggy, "Buggy"},
	} {
		if inc.on {
			node.Children = append(node.Children, Badge{Text: inc.name, Tone: "success"})
		}
	}
	if m.GreeterName != "" || m.GreeterPhone != "" {
		node.Children = append(node.Children, Field{
			Label: "Greeter",
			Value: joinNonEmpty(" · ", m.GreeterName, m.GreeterPhone),
		})
	}
	return node
}

func route(from, to string) string {
	return orDash(from) + " → " + orDash(to)
}

// arrival shows the arrival time, prefixed by the date when the leg lands
// on a later day than it departs.
func arrival(arr, dep *types.Date, at string) string {
	if arr != nil && dep != nil && !arr.Time.IsZero() && calendarDay(arr.Time).After(calendarDay(dep.Time)) {
		return joinNonEmpty(" ", arr.Time.Format(shortDateLayout), at)
	}
	return orDash(at)
}

func timeRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	}
	return Placeholder
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
