package labelerconfig

import (
	"context"
	"log"

	"Ozone/internal/atproto/pds"

	"github.com/bluesky-social/indigo/atproto/syntax"
)

const (
	// LabelerServiceCollection is the collection holding a labeler's service declaration
	LabelerServiceCollection = syntax.NSID("app.bsky.labeler.service")

	// labelerServiceRKey is the record key of the service declaration
	labelerServiceRKey = syntax.RecordKey("self")
)

// fetchLabelerRecord looks up app.bsky.labeler.service/self in the labeler's repo on its PDS.
// Returns nil when the record is missing or its value is not an object.
func (s *service) fetchLabelerRecord(ctx context.Context, pdsURL, did string) map[string]any {
	client, err := pds.NewPublicClient(pdsURL, s.httpClient)
	if err != nil {
		log.Printf("[LABELER-CONFIG] Invalid PDS URL %q for %s: %v", pdsURL, did, err)
		return nil
	}

	rec, err := client.GetRecord(ctx, did, LabelerServiceCollection, labelerServiceRKey)
	if err != nil {
		if pds.IsNotFound(err) {
			log.Printf("[LABELER-CONFIG] No labeler service record for %s on %s", did, client.HostURL())
		} else {
			log.Printf("[LABELER-CONFIG] Failed to fetch labeler service record for %s: %v", did, err)
		}
		return nil
	}

	value, ok := rec.Value.(map[string]any)
	if !ok {
		log.Printf("[LABELER-CONFIG] Labeler service record for %s has no object value", did)
		return nil
	}
	return value
}
