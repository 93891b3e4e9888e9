// Package linkvault provides an embedded Go client for the linkvault
// bookmark archive: content storage, tag management and semantic search
// over a Redis instance with the search module, without running the HTTP
// server.
//
//	client, _ := linkvault.New(ctx,
//	    linkvault.WithRedis("localhost:6379", ""),
//	    linkvault.WithEmbedder(myEmbedder),
//	)
//	defer client.Close()
//
//	id, _ := client.Content().Add(ctx, "user-1", linkvault.ContentInput{
//	    Title: "Raft Explained",
//	    Type:  "article",
//	    Link:  "https://example.com/raft",
//	    Tags:  []string{"consensus"},
//	})
//	results, _ := client.Search(ctx, "user-1", "distributed consensus", 10)
package linkvault
