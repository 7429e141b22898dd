package main

import (
	"fmt"
	"log"
	"os"

	"offwork.app/offwork/security"
)

func main() {
	secret := os.Getenv("OFFWORK_SIGNING_SECRET")
	if secret == "" {
		log.Fatal("OFFWORK_SIGNING_SECRET is not set")
	}

	identity := &security.DeviceIdentity{DeviceID: "offwork-device", UserName: "offwork"}
	token, err := security.CreateIdentityToken(identity, secret, 30*24*3600)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
