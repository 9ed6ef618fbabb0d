package client

import (
	"context"
	"time"

	"vetconnect/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Client bundles the external connections a service needs. Fields are set
// lazily so each binary only dials what it uses.
type Client struct {
	Mongo *MongoClient
	Redis *redis.Client

	VetClient         *VetClient
	ScheduleClient    *ScheduleClient
	AppointmentClient *AppointmentClient
	PetClient         *PetClient
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetRedis(log *logger.Logger, addr, password string) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to ping Redis", "error", err, "addr", addr)
	}

	log.Info("Successfully connected to Redis", "addr", addr)
	c.Redis = rdb
}

func (c *Client) SetServiceClients(vetsURL, availabilityURL, appointmentsURL, petsURL string) {
	c.VetClient = NewVetClient(vetsURL)
	c.ScheduleClient = NewScheduleClient(availabilityURL)
	c.AppointmentClient = NewAppointmentClient(appointmentsURL)
	c.PetClient = NewPetClient(petsURL)
}

func (c *Client) GracefulShutdown(log *logger.Logger) {
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.Mongo.Client.Disconnect(ctx); err != nil {
			log.Error("Failed to disconnect MongoDB client", "error", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error("Failed to close Redis client", "error", err)
		}
	}
}
