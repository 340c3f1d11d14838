// Package handler implements the fabricfwd operator API.
//
// # Endpoints
//
//	GET    /api/sessions           session dump, ?format=json for JSON
//	DELETE /api/sessions           forget every session
//	GET    /api/hosts              attached hosts
//	PUT    /api/hosts/{mac}        attach or move a host, body {"at": "D1/1"}
//	DELETE /api/hosts/{mac}        detach a host
//	GET    /api/topology           current fabric, ?format=yaml for the file format
//	GET    /api/paths?src=&dst=    minimum-hop paths between two devices
//	GET    /api/flows?device=      installed flow entries
//	GET    /api/packet-outs        recently emitted frames
//	POST   /api/packet-in          inject a frame, body {"device", "port", "frame"}
//	POST   /api/fabric/reload      re-read the fabric file
//	GET    /healthz                liveness
//	GET    /events                 Server-Sent Events stream
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes.
// Error responses return JSON with {error, details} structure.
package handler
