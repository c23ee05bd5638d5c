package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/newscout/core"
	"github.com/poiesic/newscout/storage"
)

// ConversationRepository implements storage.ConversationRepository for BadgerDB.
type ConversationRepository struct {
	backend  *Backend
	ownsBack bool
	seq      *badger.Sequence
}

var _ storage.ConversationRepository = (*ConversationRepository)(nil)

// NewConversationRepository creates a volatile in-memory repository.
// History lives only for the lifetime of the process.
func NewConversationRepository() (storage.ConversationRepository, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	repo, err := newConversationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	repo.ownsBack = true
	return repo, nil
}

// newConversationRepository wires a repository onto an existing backend.
func newConversationRepository(backend *Backend) (*ConversationRepository, error) {
	seq, err := backend.GetSequence(messageIDSeq)
	if err != nil {
		return nil, err
	}

	return &ConversationRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the message sequence, and the backend if this
// repository opened it.
func (r *ConversationRepository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	err := r.seq.Release()
	if r.ownsBack {
		if cerr := r.backend.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// AppendMessages appends messages to the session's history in the order given.
func (r *ConversationRepository) AppendMessages(ctx context.Context, sessionID string, messages ...core.Message) error {
	if sessionID == "" {
		return storage.ErrEmptySessionID
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if len(messages) == 0 {
		return nil
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, msg := range messages {
			seq, err := r.seq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if seq == 0 {
				seq, err = r.seq.Next()
				if err != nil {
					return err
				}
			}

			if msg.CreatedAt.IsZero() {
				msg.CreatedAt = time.Now().UTC()
			}

			key := makeMessageKey(sessionID, seq)
			if err := tx.Set(key, storage.MarshalMessage(&msg)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// RecentMessages returns up to n of the most recent messages, oldest first.
func (r *ConversationRepository) RecentMessages(ctx context.Context, sessionID string, n int) ([]core.Message, error) {
	if sessionID == "" {
		return nil, storage.ErrEmptySessionID
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if n <= 0 {
		return []core.Message{}, nil
	}

	all, err := r.readSession(sessionID)
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

// Conversation returns the full history for the session.
func (r *ConversationRepository) Conversation(ctx context.Context, sessionID string) (*core.Conversation, error) {
	if sessionID == "" {
		return nil, storage.ErrEmptySessionID
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	messages, err := r.readSession(sessionID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, storage.ErrNotFound
	}

	return &core.Conversation{
		SessionID: sessionID,
		Messages:  messages,
	}, nil
}

// ClearConversation removes all messages for the session. Unknown sessions
// clear to the same empty state without error.
func (r *ConversationRepository) ClearConversation(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return storage.ErrEmptySessionID
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSessionPrefix(sessionID)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readSession reads all messages for a session in insertion order.
func (r *ConversationRepository) readSession(sessionID string) ([]core.Message, error) {
	messages := []core.Message{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSessionPrefix(sessionID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var msg *core.Message
			err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				msg, unmarshalErr = storage.UnmarshalMessage(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}
			messages = append(messages, *msg)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return messages, nil
}
