package services

import "github.com/GregMSThompson/ledger-backend/internal/models"

func streamTransactions(txCh <-chan *models.Transaction, errCh <-chan error, handle func(*models.Transaction) error) error {
	for txCh != nil || errCh != nil {
		select {
		case tx, ok := <-txCh:
			if !ok {
				txCh = nil
				continue
			}
			if handle == nil {
				continue
			}
			if err := handle(tx); err != nil {
				return err
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func collectTransactions(txCh <-chan *models.Transaction, errCh <-chan error) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := streamTransactions(txCh, errCh, func(tx *models.Transaction) error {
		txs = append(txs, *tx)
		return nil
	})
	return txs, err
}
