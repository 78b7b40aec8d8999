// Package redis connects the application to the Redis server backing the
// distributed session and lockout stores.
//
// Connect retries until the server answers a ping or the attempt budget is
// spent, so the application does not race its Redis container on startup.
// Healthcheck returns a probe function for liveness endpoints.
//
//	cfg := config.MustLoad[redis.Config]()
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	sessions := session.NewManager(cookies, session.WithStore(session.NewRedisStore(client)))
package redis
