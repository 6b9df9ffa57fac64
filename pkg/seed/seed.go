// Package seed bootstraps the key-value store with the demo catalogue.
package seed

import (
	"context"
	"fmt"
	"time"

	"creatitube/pkg/kv"
	"creatitube/pkg/models"

	"golang.org/x/crypto/bcrypt"
)

type Options struct {
	// Reset overwrites records that already exist.
	Reset bool
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	Now        time.Time
}

// Result lists the records that were written.
type Result struct {
	Written []string
}

// Apply writes every demo record that is missing (or all of them with
// Reset). Existing user accounts are never dropped; seed logins are added
// only when their email is free unless Reset is set.
func Apply(ctx context.Context, store kv.Store, opts Options) (*Result, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	accounts := make(map[string]models.Account)
	for _, a := range Accounts() {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), opts.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", a.Email, err)
		}
		accounts[a.Email] = models.Account{
			Name:         a.Name,
			AvatarURL:    models.AvatarFor(avatarSeed(a.Email)),
			Role:         a.Role,
			PasswordHash: string(hash),
		}
	}

	records := map[string]any{
		kv.KeyVideos:   Videos(opts.Now),
		kv.KeyImages:   Images(opts.Now),
		kv.KeyShorts:   Shorts(),
		kv.KeyProducts: Products(),
		kv.KeyOrders:   []models.Order{},
	}

	keys := []string{kv.KeyUsers, kv.KeyVideos, kv.KeyImages, kv.KeyShorts, kv.KeyProducts, kv.KeyOrders}
	result := &Result{}
	err := store.Update(ctx, keys, func(tx kv.Tx) error {
		result.Written = result.Written[:0]

		var users map[string]models.Account
		exists, err := tx.Get(kv.KeyUsers, &users)
		if err != nil {
			return err
		}
		if users == nil {
			users = make(map[string]models.Account)
		}
		changed := !exists
		for email, acc := range accounts {
			if _, taken := users[email]; taken && !opts.Reset {
				continue
			}
			users[email] = acc
			changed = true
		}
		if changed {
			if err := tx.Put(kv.KeyUsers, users); err != nil {
				return err
			}
			result.Written = append(result.Written, kv.KeyUsers)
		}

		for _, key := range keys[1:] {
			var existing any
			exists, err := tx.Get(key, &existing)
			if err != nil {
				return err
			}
			if exists && !opts.Reset {
				continue
			}
			if err := tx.Put(key, records[key]); err != nil {
				return err
			}
			result.Written = append(result.Written, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// avatarSeed maps a seed email to the avatar seed the catalogue uses.
func avatarSeed(email string) string {
	switch email {
	case "chloe@test.com":
		return "chloe"
	case "pete@test.com":
		return "pete"
	case AdminEmail:
		return "admin"
	}
	return email
}
