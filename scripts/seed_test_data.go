package main

import (
	"context"
	"log"

	"github.com/calldesk/callcenter-backend/internal/adapter/repository"
	"github.com/calldesk/callcenter-backend/internal/domain/entities"
	"github.com/calldesk/callcenter-backend/internal/domain/repositories"
	"github.com/calldesk/callcenter-backend/internal/infrastructure/cache"
	"github.com/calldesk/callcenter-backend/pkg/config"
)

// Seeds a handful of agents and one active call with a transcript, so a
// local POST /v1/transfers/initiate has something real to transfer.
func main() {
	log.Println("🚀 Seeding test data...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	ctx := context.Background()
	agentRepo := repository.NewAgentRepository(redisClient, cfg.Store.AgentsTable)
	callRepo := repository.NewCallRepository(redisClient, cfg.Store.CallsTable)
	transcriptRepo := repository.NewTranscriptRepository(redisClient, cfg.Store.TranscriptsTable)

	testAgents := []struct {
		Name  string
		Phone string
	}{
		{Name: "Alice", Phone: "+15550000001"},
		{Name: "Bob", Phone: "+15550000002"},
		{Name: "Charlie", Phone: "+15550000003"},
	}

	var agents []*entities.Agent
	for _, ta := range testAgents {
		agent, err := agentRepo.Create(ctx, repositories.CreateAgentInput{
			Name:        ta.Name,
			PhoneNumber: ta.Phone,
			Metadata:    map[string]string{"seed": "true"},
		})
		if err != nil {
			log.Fatalf("Failed to create agent %s: %v", ta.Name, err)
		}
		log.Printf("✅ Created agent %s (%s)", agent.Name, agent.AgentID)
		agents = append(agents, agent)
	}

	call, err := callRepo.Create(ctx, repositories.CreateCallInput{
		CallerID: "caller-seed-1",
		AgentAID: agents[0].AgentID,
		Metadata: map[string]string{"seed": "true"},
	})
	if err != nil {
		log.Fatalf("Failed to create call: %v", err)
	}
	log.Printf("✅ Created call %s (agent %s)", call.CallID, agents[0].Name)

	transcriptText := "Caller: Hi, I ordered a headset last week and it arrived broken.\n" +
		"Agent: Sorry to hear that. Do you have the order number?\n" +
		"Caller: Yes, it's ORD-4417. I'd like a replacement, not a refund."
	transcript, err := transcriptRepo.Create(ctx, repositories.CreateTranscriptInput{
		CallID: call.CallID,
		Text:   transcriptText,
		Source: "seed",
	})
	if err != nil {
		log.Fatalf("Failed to create transcript: %v", err)
	}
	if _, err := callRepo.Patch(ctx, call.CallID, entities.CallPatch{
		LatestTranscript: &transcriptText,
	}); err != nil {
		log.Fatalf("Failed to attach transcript to call: %v", err)
	}
	log.Printf("✅ Created transcript %s and attached it to the call", transcript.TranscriptID)

	log.Println("")
	log.Println("🎉 Done! Try a warm transfer:")
	log.Printf(`curl -X POST http://localhost:8080/v1/transfers/initiate \
  -H 'Content-Type: application/json' \
  -d '{"callId": "%s", "agentAId": "%s", "agentBId": "%s"}'`,
		call.CallID, agents[0].AgentID, agents[1].AgentID)
}
