// Package mongodb provides the transcripts collection implementation.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/selectchat/chat-service/internal/core/docdb"
	"github.com/selectchat/chat-service/internal/domain/models"
)

const (
	// TranscriptsCollectionName is the name of the archived transcripts
	// collection.
	TranscriptsCollectionName = "transcripts"
)

// archivedMessage is the stored document shape: a message plus the
// conversation it belongs to.
type archivedMessage struct {
	models.Message `bson:",inline"`
	ConversationID string `bson:"conversationId"`
}

// TranscriptsCollection implements the docdb.TranscriptsCollection interface
// for MongoDB.
type TranscriptsCollection struct {
	transcripts *mongo.Collection
}

// NewTranscriptsCollection creates a new transcripts collection wrapper.
func NewTranscriptsCollection(db *mongo.Database) *TranscriptsCollection {
	return &TranscriptsCollection{
		transcripts: db.Collection(TranscriptsCollectionName),
	}
}

// UpsertMessages writes the given messages, replacing existing copies with
// the same id.
func (c *TranscriptsCollection) UpsertMessages(ctx context.Context, conversationID string, messages []models.Message) error {
	if conversationID == "" {
		return fmt.Errorf("conversation ID is required")
	}
	if len(messages) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(messages))
	for _, msg := range messages {
		if msg.ID == "" {
			return fmt.Errorf("message ID is required")
		}
		doc := archivedMessage{Message: msg, ConversationID: conversationID}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": msg.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	_, err := c.transcripts.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to upsert transcript messages: %w", err)
	}

	return nil
}

// ListMessages lists archived messages with pagination and sorting.
func (c *TranscriptsCollection) ListMessages(ctx context.Context, opts *docdb.ListMessagesOptions) ([]models.Message, error) {
	filter := c.buildFilter(opts)
	findOpts := c.buildFindOptions(opts)

	cursor, err := c.transcripts.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcript messages: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []archivedMessage
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode transcript messages: %w", err)
	}

	messages := make([]models.Message, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, doc.Message)
	}

	return messages, nil
}

// ListConversations lists archived conversations, most recent first.
func (c *TranscriptsCollection) ListConversations(ctx context.Context, limit int64) ([]docdb.ConversationSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$conversationId"},
			{Key: "messageCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "lastMessageAt", Value: bson.D{{Key: "$max", Value: "$createdAt"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "lastMessageAt", Value: -1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cursor, err := c.transcripts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []docdb.ConversationSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode conversation summaries: %w", err)
	}

	return summaries, nil
}

// CountByConversation returns the count of archived messages in a
// conversation.
func (c *TranscriptsCollection) CountByConversation(ctx context.Context, conversationID string) (int64, error) {
	count, err := c.transcripts.CountDocuments(ctx, bson.M{"conversationId": conversationID})
	if err != nil {
		return 0, fmt.Errorf("failed to count transcript messages: %w", err)
	}
	return count, nil
}

// EnsureIndexes creates necessary indexes for the transcripts collection.
func (c *TranscriptsCollection) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "conversationId", Value: 1},
				{Key: "createdAt", Value: 1},
			},
			Options: options.Index().SetName("idx_conversation_created"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}

	_, err := c.transcripts.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create transcript indexes: %w", err)
	}

	return nil
}

// buildFilter creates a MongoDB filter from list options.
func (c *TranscriptsCollection) buildFilter(opts *docdb.ListMessagesOptions) bson.M {
	filter := bson.M{}

	if opts == nil {
		return filter
	}

	if opts.ConversationID != "" {
		filter["conversationId"] = opts.ConversationID
	}

	return filter
}

// buildFindOptions creates MongoDB find options from list options.
func (c *TranscriptsCollection) buildFindOptions(opts *docdb.ListMessagesOptions) *options.FindOptions {
	findOpts := options.Find()

	if opts == nil {
		return findOpts
	}

	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}

	// Default to ascending order by createdAt, matching transcript order.
	sortOrder := 1
	if opts.OrderBy == docdb.SortOrderDesc {
		sortOrder = -1
	}
	findOpts.SetSort(bson.D{{Key: "createdAt", Value: sortOrder}})

	return findOpts
}
