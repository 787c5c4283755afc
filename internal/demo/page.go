package demo

// demoPage is the embedded demo UI. The IMAGES_JSON placeholder is replaced
// with the sample listing at request time.
const demoPage = `<!DOCTYPE html>
<html>
<head>
    <meta http-equiv="Cache-Control" content="no-cache, no-store, must-revalidate">
    <title>Cat Finder Demo</title>
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; background: #1a1a2e; color: #eee; margin: 0; padding: 20px; }
        h1 { text-align: center; color: #fff; }
        .status { text-align: center; color: #888; font-size: 14px; }
        .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 15px; max-width: 1200px; margin: 0 auto; }
        .card { background: #16213e; border-radius: 12px; overflow: hidden; position: relative; }
        .card.cat { box-shadow: 0 0 20px rgba(76, 175, 80, 0.6); }
        .card.nocat { box-shadow: 0 0 20px rgba(244, 67, 54, 0.4); }
        .card.processing { box-shadow: 0 0 20px rgba(255, 193, 7, 0.5); }
        .thumb { width: 100%; height: 150px; object-fit: cover; display: block; }
        .info { padding: 10px; font-size: 12px; color: #aaa; white-space: nowrap; overflow: hidden; text-overflow: ellipsis; }
        .badge { position: absolute; top: 10px; right: 10px; width: 40px; height: 40px; border-radius: 50%; display: flex; align-items: center; justify-content: center; font-size: 24px; opacity: 0; transition: all 0.3s ease; }
        .badge.show { opacity: 1; }
        .badge.cat { background: #4caf50; color: white; }
        .badge.nocat { background: #f44336; color: white; }
        .stats { text-align: center; margin-top: 20px; font-size: 18px; }
        .cats-count { color: #4caf50; margin: 0 15px; }
        .nocats-count { color: #f44336; margin: 0 15px; }
        #start-btn { display: block; margin: 20px auto; padding: 12px 30px; font-size: 16px; background: #4caf50; color: white; border: none; border-radius: 8px; cursor: pointer; }
        #start-btn:disabled { background: #666; cursor: not-allowed; }
    </style>
</head>
<body>
    <h1>Cat Finder Demo</h1>
    <p class="status" id="status">Click Start to begin detection</p>
    <button id="start-btn" onclick="startDemo()">Start Detection</button>
    <div class="stats">
        <span class="cats-count">Cats: <strong id="cat-count">0</strong></span>
        <span class="nocats-count">Not Cats: <strong id="nocat-count">0</strong></span>
    </div>
    <div class="grid" id="grid"></div>

    <script>
        const images = IMAGES_JSON;
        let catCount = 0;
        let nocatCount = 0;

        const grid = document.getElementById('grid');
        const ts = Date.now();
        images.forEach(img => {
            const card = document.createElement('div');
            card.className = 'card';
            card.id = 'card-' + img.id;
            card.innerHTML =
                '<img class="thumb" src="/image/' + img.path + '?ts=' + ts + '" alt="' + img.filename + '">' +
                '<div class="badge" id="badge-' + img.id + '"></div>' +
                '<div class="info">' + img.filename + '</div>';
            grid.appendChild(card);
        });

        function startDemo() {
            document.getElementById('start-btn').disabled = true;
            document.getElementById('status').textContent = 'Running cat detection...';
            catCount = 0;
            nocatCount = 0;
            document.getElementById('cat-count').textContent = '0';
            document.getElementById('nocat-count').textContent = '0';

            images.forEach(img => {
                const card = document.getElementById('card-' + img.id);
                const badge = document.getElementById('badge-' + img.id);
                card.className = 'card';
                badge.className = 'badge';
                badge.textContent = '';
            });

            const evtSource = new EventSource('/detect');

            evtSource.onmessage = function(event) {
                const data = JSON.parse(event.data);

                if (data.type === 'processing') {
                    const card = document.getElementById('card-' + data.id);
                    if (card) card.classList.add('processing');
                }
                else if (data.type === 'result') {
                    const card = document.getElementById('card-' + data.id);
                    const badge = document.getElementById('badge-' + data.id);
                    if (card) {
                        card.classList.remove('processing');
                        card.classList.add(data.has_cat ? 'cat' : 'nocat');
                    }
                    if (badge) {
                        badge.className = 'badge show ' + (data.has_cat ? 'cat' : 'nocat');
                        badge.textContent = data.has_cat ? '✓' : '✗';
                    }
                    if (data.has_cat) {
                        catCount++;
                        document.getElementById('cat-count').textContent = catCount;
                    } else {
                        nocatCount++;
                        document.getElementById('nocat-count').textContent = nocatCount;
                    }
                }
                else if (data.type === 'done') {
                    document.getElementById('status').textContent =
                        'Complete! Found ' + catCount + ' cats in ' + (catCount + nocatCount) + ' images.';
                    document.getElementById('start-btn').disabled = false;
                    evtSource.close();
                }
            };

            evtSource.onerror = function() {
                document.getElementById('status').textContent = 'Connection error';
                document.getElementById('start-btn').disabled = false;
                evtSource.close();
            };
        }
    </script>
</body>
</html>
`
