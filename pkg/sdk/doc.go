// Package discovery provides an embedded Go client for the painaidee
// content-discovery engine. It loads a post corpus and a location gazetteer
// into memory and answers search, suggest, related-post, and nearby queries
// in process, without running the HTTP server.
//
//	client, _ := discovery.New(ctx,
//	    discovery.WithCorpusFile("config/corpus.json"),
//	    discovery.WithGazetteerFile("config/gazetteer.yaml"),
//	)
//	resp, _ := client.Search(ctx, discovery.SearchQuery{Query: "คาเฟ่เชียงใหม่"})
//	for _, r := range resp.Results {
//	    fmt.Println(r.Score, r.Post.Caption)
//	}
//
// Geographic lookups work against the gazetteer:
//
//	nearby, _ := client.Nearby(ctx, "doi-suthep", 25, 10)
package discovery
