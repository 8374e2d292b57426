package store

import (
	"context"
	"database/sql"
	"fmt"

	"campusfound/internal/model"
)

// FileClaim files a claim against a found item. The claim insert and the
// item's exit from the claimable pool happen in one transaction, so a reader
// can never observe a pending claim whose item is still available. Returns
// ErrNotFound if the item does not exist and ErrNotClaimable if it is not
// available.
func FileClaim(ctx context.Context, db *sql.DB, foundItemID, claimantID int64, proof string, proofPhoto []byte, proofPhotoMime string) (*model.Claim, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM found_items WHERE id = ?`, foundItemID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking found item: %w", err)
	}

	if status != model.FoundStatusAvailable {
		return nil, ErrNotClaimable
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO claims (found_item_id, claimant_id, proof, proof_photo, proof_photo_mime)
		 VALUES (?, ?, ?, ?, ?)`,
		foundItemID, claimantID, proof, proofPhoto, nullString(proofPhotoMime),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting claim: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE found_items SET status = ? WHERE id = ?`,
		model.FoundStatusClaimed, foundItemID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating found item status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing claim: %w", err)
	}

	claimID, _ := result.LastInsertId()
	return GetClaim(ctx, db, claimID)
}

// claimTransitions maps a decision to the claim statuses it may be applied
// from and the resulting found-item status ("" leaves the item unchanged).
// Rejected and picked_up are terminal; approved only admits picked_up.
var claimTransitions = map[string]struct {
	from       []string
	itemStatus string
}{
	model.ClaimStatusApproved: {
		from:       []string{model.ClaimStatusPending, model.ClaimStatusForVerification},
		itemStatus: model.FoundStatusReleased,
	},
	model.ClaimStatusRejected: {
		from:       []string{model.ClaimStatusPending, model.ClaimStatusForVerification},
		itemStatus: model.FoundStatusAvailable,
	},
	model.ClaimStatusForVerification: {
		from:       []string{model.ClaimStatusPending},
		itemStatus: "",
	},
	model.ClaimStatusPickedUp: {
		from:       []string{model.ClaimStatusApproved},
		itemStatus: model.FoundStatusPickedUp,
	},
}

// AdjudicateClaim applies an admin decision to a claim and its paired found
// item in one transaction. Returns ErrNotFound if the claim does not resolve
// and ErrInvalidTransition if the decision is not permitted from the claim's
// current status.
func AdjudicateClaim(ctx context.Context, db *sql.DB, claimID int64, decision string) (*model.Claim, error) {
	transition, ok := claimTransitions[decision]
	if !ok {
		return nil, fmt.Errorf("unknown decision %q: %w", decision, ErrInvalidTransition)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	var foundItemID int64
	err = tx.QueryRowContext(ctx,
		`SELECT status, found_item_id FROM claims WHERE id = ?`, claimID,
	).Scan(&current, &foundItemID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting claim: %w", err)
	}

	allowed := false
	for _, s := range transition.from {
		if current == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("claim is %s: %w", current, ErrInvalidTransition)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE claims SET status = ?, decided_at = CURRENT_TIMESTAMP WHERE id = ?`,
		decision, claimID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating claim status: %w", err)
	}

	if transition.itemStatus != "" {
		_, err = tx.ExecContext(ctx,
			`UPDATE found_items SET status = ? WHERE id = ?`,
			transition.itemStatus, foundItemID,
		)
		if err != nil {
			return nil, fmt.Errorf("updating found item status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing adjudication: %w", err)
	}

	return GetClaim(ctx, db, claimID)
}

// GetClaim returns a claim by ID with the item and claimant names joined.
func GetClaim(ctx context.Context, db *sql.DB, id int64) (*model.Claim, error) {
	c := &model.Claim{}
	var proofPhotoMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT c.id, c.found_item_id, c.claimant_id, c.proof, c.proof_photo_mime,
		        c.status, c.created_at, c.decided_at, f.name, u.name
		 FROM claims c
		 JOIN found_items f ON f.id = c.found_item_id
		 JOIN users u ON u.id = c.claimant_id
		 WHERE c.id = ?`, id,
	).Scan(&c.ID, &c.FoundItemID, &c.ClaimantID, &c.Proof, &proofPhotoMime,
		&c.Status, &c.CreatedAt, &c.DecidedAt, &c.ItemName, &c.ClaimantName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting claim: %w", err)
	}
	c.ProofPhotoMime = proofPhotoMime.String
	return c, nil
}

// ListClaims returns claims, optionally filtered by status, in creation order.
func ListClaims(ctx context.Context, db *sql.DB, status string) ([]model.Claim, error) {
	query := `SELECT c.id, c.found_item_id, c.claimant_id, c.proof, c.proof_photo_mime,
	                 c.status, c.created_at, c.decided_at, f.name, u.name
	          FROM claims c
	          JOIN found_items f ON f.id = c.found_item_id
	          JOIN users u ON u.id = c.claimant_id`
	var args []any
	if status != "" {
		query += ` WHERE c.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY c.id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	return scanClaims(rows)
}

// ListClaimsByClaimant returns all claims filed by a user.
func ListClaimsByClaimant(ctx context.Context, db *sql.DB, claimantID int64) ([]model.Claim, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT c.id, c.found_item_id, c.claimant_id, c.proof, c.proof_photo_mime,
		        c.status, c.created_at, c.decided_at, f.name, u.name
		 FROM claims c
		 JOIN found_items f ON f.id = c.found_item_id
		 JOIN users u ON u.id = c.claimant_id
		 WHERE c.claimant_id = ?
		 ORDER BY c.id`, claimantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing claims by claimant: %w", err)
	}
	defer rows.Close()

	return scanClaims(rows)
}

// GetClaimProofPhoto returns a claim's proof photo data and MIME type.
func GetClaimProofPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT proof_photo, proof_photo_mime FROM claims WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting claim proof photo: %w", err)
	}
	return photo, mime.String, nil
}

func scanClaims(rows *sql.Rows) ([]model.Claim, error) {
	var claims []model.Claim
	for rows.Next() {
		var c model.Claim
		var proofPhotoMime sql.NullString
		if err := rows.Scan(&c.ID, &c.FoundItemID, &c.ClaimantID, &c.Proof, &proofPhotoMime,
			&c.Status, &c.CreatedAt, &c.DecidedAt, &c.ItemName, &c.ClaimantName); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		c.ProofPhotoMime = proofPhotoMime.String
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
