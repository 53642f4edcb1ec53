package handlers

import (
	adminRepo "buskpod/database/repository/admin"
	"buskpod/services/admin"
	"buskpod/services/booking"
	"buskpod/services/busker"
	"buskpod/services/event"
	"buskpod/services/location"
	"buskpod/services/pod"
	"buskpod/services/user"
)

// HandlerBundle groups the endpoint handlers and the repos the route-level
// middleware needs.
type HandlerBundle struct {
	AdminRepo adminRepo.AdminRepository

	Auth      *AuthHandler
	Users     *UserHandler
	Buskers   *BuskerHandler
	Pods      *PodHandler
	Bookings  *BookingHandler
	Events    *EventHandler
	Locations *LocationHandler
	Admin     *AdminHandler
	Uploads   *UploadHandler
}

// NewHandlerBundle wires handlers over the given services.
func NewHandlerBundle(
	adminRepository adminRepo.AdminRepository,
	userSvc user.UserService,
	buskerSvc busker.BuskerService,
	podSvc pod.PodService,
	bookingSvc booking.BookingService,
	eventSvc event.EventService,
	locationSvc location.LocationService,
	adminSvc admin.AdminService,
) *HandlerBundle {
	uploads := &UploadHandler{}
	return &HandlerBundle{
		AdminRepo: adminRepository,
		Auth:      &AuthHandler{Users: userSvc},
		Users:     &UserHandler{Users: userSvc},
		Buskers:   &BuskerHandler{Buskers: buskerSvc, Uploads: uploads},
		Pods:      &PodHandler{Pods: podSvc},
		Bookings:  &BookingHandler{Bookings: bookingSvc},
		Events:    &EventHandler{Events: eventSvc},
		Locations: &LocationHandler{Locations: locationSvc},
		Admin:     &AdminHandler{Admins: adminSvc, Buskers: buskerSvc},
		Uploads:   uploads,
	}
}
