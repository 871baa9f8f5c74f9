package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

const changesChannel = "docstore_changes"

type postgresBackend struct {
	db       *sql.DB
	listener *pq.Listener
	stop     chan struct{}
}

// NewPostgresStore usa a tabela documents (ver migrations) e LISTEN/NOTIFY para
// propagar mudanças entre réplicas. dsn é usado só pela conexão dedicada do listener.
func NewPostgresStore(db *sql.DB, dsn string) (*TreeStore, error) {
	b := &postgresBackend{db: db, stop: make(chan struct{})}
	store := newTreeStore(b, false)

	b.listener = pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("⚠️ [DocStore] Listener postgres: %v", err)
		}
	})
	if err := b.listener.Listen(changesChannel); err != nil {
		b.listener.Close()
		return nil, fmt.Errorf("falha ao escutar %s: %w", changesChannel, err)
	}
	go b.forward(store.hub)

	log.Println("✅ [DocStore] Postgres conectado (LISTEN docstore_changes)")
	return store, nil
}

func (b *postgresBackend) forward(h *hub) {
	for {
		select {
		case <-b.stop:
			return
		case n, ok := <-b.listener.Notify:
			if !ok {
				return
			}
			// nil chega após reconexão: notificações podem ter se perdido
			if n == nil {
				h.publishAll()
				continue
			}
			h.publish(n.Extra)
		case <-time.After(90 * time.Second):
			go b.listener.Ping()
		}
	}
}

func (b *postgresBackend) load(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := b.db.QueryRowContext(ctx, `SELECT data FROM documents WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return raw, err
}

func (b *postgresBackend) apply(ctx context.Context, keys []string, fn func(map[string][]byte) (map[string][]byte, error)) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	current := make(map[string][]byte, len(keys))
	for _, k := range keys {
		// keys chegam ordenadas, então os locks são sempre adquiridos na mesma ordem
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, k); err != nil {
			return err
		}
		var raw []byte
		err := tx.QueryRowContext(ctx, `SELECT data FROM documents WHERE key = $1`, k).Scan(&raw)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		current[k] = raw
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	for k, raw := range next {
		if raw == nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE key = $1`, k); err != nil {
				return err
			}
		} else {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO documents (key, data, updated_at)
				VALUES ($1, $2, NOW())
				ON CONFLICT (key)
				DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
			`, k, raw)
			if err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, changesChannel, k); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (b *postgresBackend) close() error {
	close(b.stop)
	return b.listener.Close()
}
