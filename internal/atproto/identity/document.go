package identity

import "strings"

// parseW3CDocument converts a raw W3C DID document (as served by did:web hosts)
// into DIDDocData. Entries with missing or wrongly-typed fields are dropped.
// The caller must have checked that raw["id"] is the expected DID.
func parseW3CDocument(raw map[string]any) *DIDDocData {
	id, _ := raw["id"].(string)
	doc := &DIDDocData{
		DID:                 id,
		AlsoKnownAs:         stringList(raw["alsoKnownAs"]),
		VerificationMethods: map[string]string{},
		Services:            map[string]DIDService{},
	}

	if methods, ok := raw["verificationMethod"].([]any); ok {
		for _, m := range methods {
			vm, ok := m.(map[string]any)
			if !ok {
				continue
			}
			vmID, ok1 := vm["id"].(string)
			multibase, ok2 := vm["publicKeyMultibase"].(string)
			if !ok1 || !ok2 || vm["type"] != "Multikey" {
				continue
			}
			fragment, ok := fragmentOf(vmID)
			if !ok {
				continue
			}
			doc.VerificationMethods[fragment] = "did:key:" + multibase
		}
	}

	if services, ok := raw["service"].([]any); ok {
		for _, s := range services {
			svc, ok := s.(map[string]any)
			if !ok {
				continue
			}
			svcID, ok1 := svc["id"].(string)
			svcType, ok2 := svc["type"].(string)
			endpoint, ok3 := svc["serviceEndpoint"].(string)
			if !ok1 || !ok2 || !ok3 {
				continue
			}
			fragment, ok := fragmentOf(svcID)
			if !ok {
				continue
			}
			doc.Services[fragment] = DIDService{Type: svcType, Endpoint: endpoint}
		}
	}

	return doc
}

// parsePLCData converts the body of a PLC directory /<did>/data response into
// DIDDocData. That format already keys keys and services by fragment:
//
//	{"did": "...", "alsoKnownAs": [...],
//	 "verificationMethods": {"atproto": "did:key:..."},
//	 "services": {"atproto_pds": {"type": "...", "endpoint": "..."}}}
func parsePLCData(raw map[string]any, did string) *DIDDocData {
	docDID, ok := raw["did"].(string)
	if !ok || docDID == "" {
		docDID = did
	}
	doc := &DIDDocData{
		DID:                 docDID,
		AlsoKnownAs:         stringList(raw["alsoKnownAs"]),
		VerificationMethods: map[string]string{},
		Services:            map[string]DIDService{},
	}

	if methods, ok := raw["verificationMethods"].(map[string]any); ok {
		for id, v := range methods {
			key, ok := v.(string)
			if !ok || !strings.HasPrefix(key, "did:key:") {
				continue
			}
			doc.VerificationMethods[id] = key
		}
	}

	if services, ok := raw["services"].(map[string]any); ok {
		for id, v := range services {
			svc, ok := v.(map[string]any)
			if !ok {
				continue
			}
			svcType, ok1 := svc["type"].(string)
			endpoint, ok2 := svc["endpoint"].(string)
			if !ok1 || !ok2 {
				continue
			}
			doc.Services[id] = DIDService{Type: svcType, Endpoint: endpoint}
		}
	}

	return doc
}

// fragmentOf returns the part of a DID URL after '#'
func fragmentOf(id string) (string, bool) {
	_, fragment, found := strings.Cut(id, "#")
	if !found || fragment == "" {
		return "", false
	}
	return fragment, true
}

// stringList keeps only the string elements of a JSON array, in order
func stringList(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
