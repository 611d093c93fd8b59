package types

// Client -> Server (HTTP)
//
// POST /games
//   players: [string, string]   // or:
//   player: string, vsBot: true
//
// POST /games/{gameID}/actions
//   playerId: string
//   action:
//     kind: "PLAY" | "PASS" | "EXCHANGE"
//     payload: { word } | {} | { letters }
//     rawInput: string // what the player typed; echoed to chat when present
//
// POST /games/{gameID}/chat
//   playerId: string
//   message: { senderId, content } // broadcast unchanged
//
// POST /games/{gameID}/errors
//   playerId: string
//   message: { senderId, content } // delivered to playerId only,
//                                  // sender forced to "system-error"

// Client -> Server (WebSocket, GET /ws?game=..&player=..)
//
// chat:
//   content: string

// Server -> Client (WebSocket)
//
// newMessage:
//   content: string       // may contain <br> markup in end-game summaries
//   senderId: string      // player id, "system", or "system-error"
//   gameId: string
//   isClickable: boolean  // optional
//
// gameUpdate:
//   round: { number, activePlayer }
//   scores: { [playerId]: number }
//   rackCounts: { [playerId]: number }
//   streaks: { [playerId]: number }
//   tilesLeft: number
//   lastMove: { playerId, kind, word?, points? } // optional
//   over: boolean
