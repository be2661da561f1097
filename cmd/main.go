package main

import (
	"log"

	"backend/config"
	"backend/controllers"
	"backend/routes"
	"backend/services"
	"backend/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitMailer()
	utils.InitRekognition()

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Fatalf("push service init failed: %v", err)
	}
	services.InitActivityDeps(config.DB, hub, push)

	claimSvc := services.NewClaimService(config.DB, services.RealClock{})
	eventSvc := services.NewEventService(config.DB)
	rsvpSvc := services.NewRSVPService(config.DB, claimSvc)

	r := routes.SetupRouter(routes.Controllers{
		Claims:   controllers.NewClaimController(claimSvc),
		Events:   controllers.NewEventController(eventSvc),
		RSVPs:    controllers.NewRSVPController(rsvpSvc),
		Devices:  controllers.NewDeviceController(push),
		Realtime: controllers.NewRealtimeController(hub),
	})
	r.Run(":8080")
}
