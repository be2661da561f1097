package utils

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

var rekClient *rekognition.Client

// must be called once at startup (e.g. in main.go)
func InitRekognition() {
	awsRegion := os.Getenv("AWS_REGION")
	if awsRegion == "" {
		log.Fatal("AWS_REGION not set")
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		log.Fatalf("unable to load AWS config: %v", err)
	}
	rekClient = rekognition.NewFromConfig(cfg)
}

const moderationMinConfidence = 80

// ModerateImage runs Rekognition content moderation over uploaded image
// bytes (avatars, cookbook covers) and returns the flagged label names.
// Empty result means the image is fine to store.
func ModerateImage(imageData []byte) ([]string, error) {
	if rekClient == nil {
		InitRekognition()
	}
	out, err := rekClient.DetectModerationLabels(context.TODO(), &rekognition.DetectModerationLabelsInput{
		Image:         &rektypes.Image{Bytes: imageData},
		MinConfidence: aws.Float32(moderationMinConfidence),
	})
	if err != nil {
		return nil, err
	}
	var flagged []string
	for _, l := range out.ModerationLabels {
		if l.Name != nil {
			flagged = append(flagged, *l.Name)
		}
	}
	return flagged, nil
}
